package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/backup"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
)

type BackupHandler struct {
	sched *backup.Scheduler
	store kv.Store
}

func NewBackupHandler(sched *backup.Scheduler, store kv.Store) *BackupHandler {
	return &BackupHandler{sched: sched, store: store}
}

// GET /backups
func (h *BackupHandler) List(c fiber.Ctx) error {
	keys, err := h.store.Keys(c.Context(), backup.SlotPrefix)
	if err != nil {
		return err
	}

	last := kv.Read(c.Context(), h.store, backup.SlotLastBackup, time.Time{})
	resp := fiber.Map{"slots": keys}
	if !last.IsZero() {
		resp["lastBackup"] = last
	}
	return ok(c, resp)
}

// POST /backups/run
//
// Takes a snapshot immediately, skipping the age check.
func (h *BackupHandler) Run(c fiber.Ctx) error {
	if err := h.sched.Backup(c.Context()); err != nil {
		return err
	}
	return noContent(c)
}
