// Package app opens the pieces both binaries share: the SQLite file, the
// form variant registry and one collection per variant.
package app

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"MedAI_LandingSite/internal/models"
	"MedAI_LandingSite/internal/storage"
	"MedAI_LandingSite/internal/variants"
)

type Stores struct {
	DB       *sql.DB
	Registry *variants.Registry
	Demo     *storage.Collection[models.SubmissionRecord]
	Calls    *storage.Collection[models.CallRequestRecord]
}

func OpenStores(dbPath string, logger *zap.Logger) (*Stores, error) {
	registry, err := variants.Load()
	if err != nil {
		return nil, err
	}

	db, err := storage.OpenDB(dbPath)
	if err != nil {
		return nil, err
	}

	s, err := NewStores(storage.NewSQLiteKV(db), registry, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.DB = db
	return s, nil
}

// NewStores binds each variant's storage key to a collection on kv.
func NewStores(kv storage.KV, registry *variants.Registry, logger *zap.Logger) (*Stores, error) {
	demo, err := registry.Get(variants.Demo)
	if err != nil {
		return nil, fmt.Errorf("NewStores(): %w", err)
	}
	call, err := registry.Get(variants.Call)
	if err != nil {
		return nil, fmt.Errorf("NewStores(): %w", err)
	}

	return &Stores{
		Registry: registry,
		Demo:     storage.NewCollection[models.SubmissionRecord](kv, demo.StorageKey, logger),
		Calls:    storage.NewCollection[models.CallRequestRecord](kv, call.StorageKey, logger),
	}, nil
}

func (s *Stores) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
