package handler

import (
	"log/slog"
	"net/http"

	"github.com/squeakyapp/squeaky/internal/clock"
	"github.com/squeakyapp/squeaky/internal/store"
	"github.com/squeakyapp/squeaky/internal/streak"
)

// JobsHandler exposes the maintenance sweeps as endpoints so they can
// be triggered on demand, in addition to the background scheduler.
type JobsHandler struct {
	users   *store.UserStore
	invites *store.InviteStore
	clock   clock.Clock
	logger  *slog.Logger
}

func NewJobsHandler(users *store.UserStore, invites *store.InviteStore, clk clock.Clock, logger *slog.Logger) *JobsHandler {
	return &JobsHandler{users: users, invites: invites, clock: clk, logger: logger}
}

// ExpireStreaks resets the streak of every user whose last cleaning
// was before the start of yesterday.
func (h *JobsHandler) ExpireStreaks(w http.ResponseWriter, r *http.Request) {
	cutoff := streak.StaleCutoff(h.clock.Now())
	reset, err := h.users.ResetStaleStreaks(cutoff)
	if err != nil {
		h.logger.Error("expire streaks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to expire streaks")
		return
	}

	h.logger.Info("expired stale streaks", "reset", reset, "cutoff", cutoff)
	writeJSON(w, http.StatusOK, map[string]int64{"reset": reset})
}

// CleanupInvites deletes time limited invites whose expiry has passed.
func (h *JobsHandler) CleanupInvites(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.invites.DeleteExpired(h.clock.Now())
	if err != nil {
		h.logger.Error("cleanup invites", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clean up invites")
		return
	}

	h.logger.Info("cleaned up expired invites", "deleted", deleted)
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
