package backup

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
)

type fixedSnapshotter struct {
	patients []model.Patient
	doctors  []model.Doctor
}

func (f fixedSnapshotter) Snapshot() ([]model.Patient, []model.Doctor) {
	return f.patients, f.doctors
}

// failingStore fails every Set once armed.
type failingStore struct {
	kv.Store
	fail bool
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Store.Set(ctx, key, value)
}

func newTestScheduler(store kv.Store, now *time.Time) *Scheduler {
	snap := fixedSnapshotter{
		patients: []model.Patient{{ID: "patient-1", FirstName: "John", LastName: "Williams"}},
		doctors:  []model.Doctor{{ID: "doctor-1", Name: "Dr. Smith"}},
	}
	return New(store, snap, time.Hour, 7*24*time.Hour, 4,
		WithClock(func() time.Time { return *now }),
		WithRegisterer(prometheus.NewRegistry()))
}

func TestCheckOnceBacksUpWhenNeverBackedUp(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s := newTestScheduler(store, &now)

	s.CheckOnce(ctx)

	last := kv.Read(ctx, store, SlotLastBackup, time.Time{})
	if !last.Equal(now) {
		t.Fatalf("last_backup = %v, want %v", last, now)
	}

	snap := kv.Read(ctx, store, "backup_2025-06-01", Snapshot{})
	if !snap.Timestamp.Equal(now) {
		t.Fatalf("snapshot timestamp = %v", snap.Timestamp)
	}
	if len(snap.Data.Patients) != 1 || len(snap.Data.Doctors) != 1 {
		t.Fatalf("snapshot data: %+v", snap.Data)
	}
}

func TestCheckOnceSkipsRecentBackup(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s := newTestScheduler(store, &now)

	s.CheckOnce(ctx)

	// Three days later the backup is still fresh.
	now = now.Add(3 * 24 * time.Hour)
	s.CheckOnce(ctx)

	keys, err := store.Keys(ctx, SlotPrefix)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"backup_2025-06-01"}) {
		t.Fatalf("slots = %v, want only the first backup", keys)
	}
}

func TestCheckOnceBacksUpWhenStale(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s := newTestScheduler(store, &now)

	s.CheckOnce(ctx)

	now = now.Add(7 * 24 * time.Hour)
	s.CheckOnce(ctx)

	keys, err := store.Keys(ctx, SlotPrefix)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	want := []string{"backup_2025-06-01", "backup_2025-06-08"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("slots = %v, want %v", keys, want)
	}

	last := kv.Read(ctx, store, SlotLastBackup, time.Time{})
	if !last.Equal(now) {
		t.Fatalf("last_backup = %v, want %v", last, now)
	}
}

func TestBackupPrunesToRetainLimit(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s := newTestScheduler(store, &now)

	for i := 0; i < 6; i++ {
		if err := s.Backup(ctx); err != nil {
			t.Fatalf("Backup %d: %v", i, err)
		}
		now = now.Add(8 * 24 * time.Hour)
	}

	keys, err := store.Keys(ctx, SlotPrefix)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	want := []string{
		"backup_2025-01-17",
		"backup_2025-01-25",
		"backup_2025-02-02",
		"backup_2025-02-10",
	}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("slots = %v, want newest 4 %v", keys, want)
	}
}

func TestSameDayBackupOverwritesSlot(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s := newTestScheduler(store, &now)

	if err := s.Backup(ctx); err != nil {
		t.Fatalf("Backup: %v", err)
	}
	now = now.Add(2 * time.Hour)
	if err := s.Backup(ctx); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	keys, _ := store.Keys(ctx, SlotPrefix)
	if !reflect.DeepEqual(keys, []string{"backup_2025-06-01"}) {
		t.Fatalf("slots = %v", keys)
	}
	snap := kv.Read(ctx, store, "backup_2025-06-01", Snapshot{})
	if !snap.Timestamp.Equal(now) {
		t.Fatalf("slot not overwritten, timestamp = %v", snap.Timestamp)
	}
}

func TestFailedBackupLeavesLastBackupUntouched(t *testing.T) {
	ctx := context.Background()
	inner := kv.NewMemory()
	store := &failingStore{Store: inner}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s := newTestScheduler(store, &now)

	if err := s.Backup(ctx); err != nil {
		t.Fatalf("Backup: %v", err)
	}
	first := now

	now = now.Add(8 * 24 * time.Hour)
	store.fail = true
	if err := s.Backup(ctx); err == nil {
		t.Fatal("Backup on failing store should error")
	}

	last := kv.Read(ctx, inner, SlotLastBackup, time.Time{})
	if !last.Equal(first) {
		t.Fatalf("last_backup moved to %v on failed backup", last)
	}

	// The next check retries once the store recovers.
	store.fail = false
	s.CheckOnce(ctx)
	last = kv.Read(ctx, inner, SlotLastBackup, time.Time{})
	if !last.Equal(now) {
		t.Fatalf("retry did not advance last_backup: %v", last)
	}
}
