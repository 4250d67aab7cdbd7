package app

import (
	"errors"
	"fmt"

	"MedAI_LandingSite/internal/export"
	"MedAI_LandingSite/internal/storage"
	"MedAI_LandingSite/internal/variants"
)

// View is the admin surface over one collection: list, export, clear.
// The HTTP admin and the CLI both go through it.
type View interface {
	Variant() variants.Variant
	// Records returns the collection and its length from a single read.
	Records() (records any, total int)
	Table() (header []string, rows [][]string)
	// Export renders the collection as "json" or "csv" and reports how many
	// records went into it.
	Export(format string) (data []byte, total int, err error)
	// Clear deletes the collection once confirm agrees. archive, when set,
	// first receives a JSON snapshot of a non-empty collection; its error
	// aborts the clear.
	Clear(confirm func() bool, archive func(snapshot []byte) error) (bool, error)
}

var ErrUnknownFormat = errors.New("unknown export format")

type typedView[T export.Row] struct {
	variant    variants.Variant
	collection *storage.Collection[T]
}

func NewView[T export.Row](v variants.Variant, c *storage.Collection[T]) View {
	return &typedView[T]{variant: v, collection: c}
}

func (v *typedView[T]) Variant() variants.Variant { return v.variant }

func (v *typedView[T]) Records() (any, int) {
	records := v.collection.ReadAll()
	return records, len(records)
}

func (v *typedView[T]) Table() ([]string, [][]string) {
	var zero T
	records := v.collection.ReadAll()
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.CSVRow()
	}
	return zero.CSVHeader(), rows
}

func (v *typedView[T]) Export(format string) ([]byte, int, error) {
	records := v.collection.ReadAll()
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = export.JSON(records)
	case "csv":
		data, err = export.CSV(records)
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, 0, err
	}
	return data, len(records), nil
}

func (v *typedView[T]) Clear(confirm func() bool, archive func([]byte) error) (bool, error) {
	var snapshot func([]T) error
	if archive != nil {
		snapshot = func(records []T) error {
			if len(records) == 0 {
				return nil
			}
			data, err := export.JSON(records)
			if err != nil {
				return err
			}
			return archive(data)
		}
	}
	return v.collection.ClearAll(confirm, snapshot)
}

// Views keys one View per collection by its export prefix
// ("demo-requests", "call-requests").
func (s *Stores) Views() map[string]View {
	views := make(map[string]View, 2)
	if v, err := s.Registry.Get(variants.Demo); err == nil {
		views[v.ExportPrefix] = NewView(v, s.Demo)
	}
	if v, err := s.Registry.Get(variants.Call); err == nil {
		views[v.ExportPrefix] = NewView(v, s.Calls)
	}
	return views
}
