// Package backup writes dated snapshots of the clinic datasets into the
// key-value store and prunes old ones.
package backup

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
)

const (
	// SlotLastBackup records when the last successful snapshot was taken.
	SlotLastBackup = "last_backup"

	// SlotPrefix is the common prefix of dated snapshot slots, keyed as
	// backup_<YYYY-MM-DD>. A second snapshot on the same calendar day
	// overwrites the first.
	SlotPrefix = "backup_"
)

// Snapshotter is the clinic-store view the scheduler needs.
type Snapshotter interface {
	Snapshot() ([]model.Patient, []model.Doctor)
}

// Snapshot is the persisted payload of one dated backup slot.
type Snapshot struct {
	Timestamp time.Time    `json:"timestamp"`
	Data      SnapshotData `json:"data"`
}

type SnapshotData struct {
	Patients []model.Patient `json:"patients"`
	Doctors  []model.Doctor  `json:"doctors"`
}

type metrics struct {
	runs     prometheus.Counter
	failures prometheus.Counter
	lastUnix prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		runs: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "dental_backups_total",
			Help: "Snapshots successfully written.",
		}),
		failures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "dental_backup_failures_total",
			Help: "Snapshot attempts that failed to persist.",
		}),
		lastUnix: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "dental_backup_last_timestamp_seconds",
			Help: "Unix time of the last successful snapshot.",
		}),
	}
}

// Scheduler runs the age check on start and on a fixed interval, snapshots
// when the last backup is older than MaxAge, and keeps the newest Retain
// dated slots.
type Scheduler struct {
	kv      kv.Store
	snap    Snapshotter
	clock   func() time.Time
	metrics *metrics

	checkInterval time.Duration
	maxAge        time.Duration
	retain        int
}

type Option func(*Scheduler)

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) { s.clock = clock }
}

// WithRegisterer overrides the metrics registry, for tests.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Scheduler) { s.metrics = newMetrics(reg) }
}

func New(store kv.Store, snap Snapshotter, checkInterval, maxAge time.Duration, retain int, opts ...Option) *Scheduler {
	s := &Scheduler{
		kv:            store,
		snap:          snap,
		clock:         time.Now,
		checkInterval: checkInterval,
		maxAge:        maxAge,
		retain:        retain,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = newMetrics(prometheus.DefaultRegisterer)
	}
	return s
}

// Run blocks until ctx is canceled. The first check happens immediately.
func (s *Scheduler) Run(ctx context.Context) {
	s.CheckOnce(ctx)

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CheckOnce(ctx)
		}
	}
}

// CheckOnce snapshots only when the last backup is missing or older than
// the configured age.
func (s *Scheduler) CheckOnce(ctx context.Context) {
	last := kv.Read(ctx, s.kv, SlotLastBackup, time.Time{})
	now := s.clock()

	if !last.IsZero() && now.Sub(last) < s.maxAge {
		return
	}

	if err := s.Backup(ctx); err != nil {
		slog.Error("scheduled backup failed", "error", err)
	}
}

// Backup writes a snapshot unconditionally, advances last_backup and prunes
// old slots. On a write failure last_backup is left untouched so the next
// check retries.
func (s *Scheduler) Backup(ctx context.Context) error {
	now := s.clock()
	patients, doctors := s.snap.Snapshot()

	snap := Snapshot{
		Timestamp: now,
		Data:      SnapshotData{Patients: patients, Doctors: doctors},
	}

	slot := SlotPrefix + now.Format("2006-01-02")
	if err := kv.Write(ctx, s.kv, slot, snap); err != nil {
		s.metrics.failures.Inc()
		return err
	}
	if err := kv.Write(ctx, s.kv, SlotLastBackup, now); err != nil {
		s.metrics.failures.Inc()
		return err
	}

	s.metrics.runs.Inc()
	s.metrics.lastUnix.Set(float64(now.Unix()))
	slog.Info("backup written", "slot", slot, "patients", len(patients), "doctors", len(doctors))

	s.prune(ctx)
	return nil
}

// prune keeps the newest retain dated slots. Slot names sort
// chronologically, so newest-first is reverse lexicographic order.
func (s *Scheduler) prune(ctx context.Context) {
	keys, err := s.kv.Keys(ctx, SlotPrefix)
	if err != nil {
		slog.Warn("backup prune skipped", "error", err)
		return
	}
	if len(keys) <= s.retain {
		return
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	for _, k := range keys[s.retain:] {
		if err := s.kv.Delete(ctx, k); err != nil {
			slog.Warn("backup prune failed to delete slot", "slot", k, "error", err)
			continue
		}
		slog.Info("pruned old backup", "slot", k)
	}
}
