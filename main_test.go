package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"todolists/internal/config"
	"todolists/internal/logging"
)

func TestSeedStore_AppliedOnceAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	logger := logging.New(io.Discard, logging.Options{Level: "error"})
	cfg := &config.Config{
		Backend: config.BackendSQLite,
		DBPath:  filepath.Join(t.TempDir(), "data", "todolists.db"),
		Seed:    config.SeedDefault,
	}

	for startup := 1; startup <= 2; startup++ {
		s, err := openStore(ctx, cfg)
		if err != nil {
			t.Fatalf("startup %d: openStore failed: %v", startup, err)
		}

		if err := seedStore(ctx, s, cfg.Seed, logger); err != nil {
			s.Close()
			t.Fatalf("startup %d: seedStore failed: %v", startup, err)
		}

		lists, err := s.ListLists(ctx)
		s.Close()
		if err != nil {
			t.Fatalf("startup %d: ListLists failed: %v", startup, err)
		}
		if len(lists) != 2 {
			t.Errorf("startup %d: expected seed applied once (2 lists), got %d", startup, len(lists))
		}
	}
}

func TestSeedStore_SkipsNonEmptyMemoryStore(t *testing.T) {
	ctx := context.Background()
	logger := logging.New(io.Discard, logging.Options{Level: "error"})

	s, err := openStore(ctx, &config.Config{Backend: config.BackendMemory})
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer s.Close()

	if _, err := s.AddList(ctx, "Groceries"); err != nil {
		t.Fatalf("AddList failed: %v", err)
	}
	if err := seedStore(ctx, s, config.SeedDefault, logger); err != nil {
		t.Fatalf("seedStore failed: %v", err)
	}

	lists, _ := s.ListLists(ctx)
	if len(lists) != 1 || lists[0].Title != "Groceries" {
		t.Errorf("expected only the existing list, got %+v", lists)
	}
}

func TestSeedStore_EmptySourceIsNoop(t *testing.T) {
	ctx := context.Background()
	logger := logging.New(io.Discard, logging.Options{Level: "error"})

	s, _ := openStore(ctx, &config.Config{Backend: config.BackendMemory})
	defer s.Close()

	if err := seedStore(ctx, s, "", logger); err != nil {
		t.Fatalf("seedStore failed: %v", err)
	}
	lists, _ := s.ListLists(ctx)
	if len(lists) != 0 {
		t.Errorf("expected no lists, got %d", len(lists))
	}
}
