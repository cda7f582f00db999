package kv

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/dentcare/dentcare_backend/internal/model"
)

func TestReadWriteRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	in := payload{Name: "clinic", Count: 3}
	if err := Write(ctx, store, "slot", in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := Read(ctx, store, "slot", payload{})
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestReadMissingReturnsDefault(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	got := Read(ctx, store, "absent", "fallback")
	if got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestReadCorruptSlotReturnsDefault(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if err := store.Set(ctx, "slot", "{not json"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got := Read(ctx, store, "slot", 42)
	if got != 42 {
		t.Fatalf("got %d, want default 42", got)
	}
}

func TestMemoryKeysPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	for _, k := range []string{"backup_2025-01-03", "backup_2025-01-01", "users"} {
		if err := store.Set(ctx, k, "{}"); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	keys, err := store.Keys(ctx, "backup_")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	want := []string{"backup_2025-01-01", "backup_2025-01-03"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if err := store.Set(ctx, "slot", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Delete(ctx, "slot"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "slot"); err != ErrNotFound {
		t.Fatalf("Get after delete: err = %v, want ErrNotFound", err)
	}

	// Deleting a missing slot is not an error.
	if err := store.Delete(ctx, "slot"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func TestPatientListRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	in := model.DefaultPatients(now)

	if err := Write(ctx, store, "patients", in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := Read(ctx, store, "patients", []model.Patient(nil))
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("reconstructed patients differ\n got: %+v\nwant: %+v", out, in)
	}
}
