package variants

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	Demo = "demo"
	Call = "call"
)

var ErrUnknownVariant = errors.New("unknown form variant")

//go:embed forms.yaml
var formsYAML []byte

type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// 폼 종류별 문구와 저장 위치
type Variant struct {
	Key             string              `yaml:"-" json:"key"`
	Name            string              `yaml:"name" json:"name"`
	Description     string              `yaml:"description" json:"description"`
	StorageKey      string              `yaml:"storage_key" json:"-"`
	ExportPrefix    string              `yaml:"export_prefix" json:"exportPrefix"`
	SuccessTitle    string              `yaml:"success_title" json:"successTitle"`
	SuccessMessage  string              `yaml:"success_message" json:"successMessage"`
	SubmitLabel     string              `yaml:"submit_label" json:"submitLabel"`
	SubmittingLabel string              `yaml:"submitting_label" json:"submittingLabel"`
	Notice          string              `yaml:"notice" json:"notice,omitempty"`
	Options         map[string][]Option `yaml:"options" json:"options,omitempty"`
}

type Registry struct {
	variants map[string]Variant
}

// Load parses the embedded registry.
func Load() (*Registry, error) {
	return Parse(formsYAML)
}

func Parse(data []byte) (*Registry, error) {
	var raw map[string]Variant
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse form variants: %w", err)
	}
	for key, v := range raw {
		if v.StorageKey == "" || v.ExportPrefix == "" {
			return nil, fmt.Errorf("form variant %q: storage_key and export_prefix are required", key)
		}
		v.Key = key
		raw[key] = v
	}
	return &Registry{variants: raw}, nil
}

func (r *Registry) Get(key string) (Variant, error) {
	v, exists := r.variants[key]
	if !exists {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, key)
	}
	return v, nil
}

// ByExportPrefix finds the variant whose collection is exposed as prefix,
// e.g. "demo-requests".
func (r *Registry) ByExportPrefix(prefix string) (Variant, error) {
	for _, v := range r.variants {
		if v.ExportPrefix == prefix {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, prefix)
}

func (r *Registry) All() []Variant {
	all := make([]Variant, 0, len(r.variants))
	for _, v := range r.variants {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })
	return all
}

// HasOption reports whether value is listed under the named option set.
func (v Variant) HasOption(set, value string) bool {
	for _, o := range v.Options[set] {
		if o.Value == value {
			return true
		}
	}
	return false
}
