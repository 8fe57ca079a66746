package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/squeakyapp/squeaky/internal/achievement"
	"github.com/squeakyapp/squeaky/internal/clock"
	"github.com/squeakyapp/squeaky/internal/store"
	"github.com/squeakyapp/squeaky/internal/websocket"
)

type AchievementHandler struct {
	engine *achievement.Engine
	awards *store.AchievementStore
	clock  clock.Clock
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewAchievementHandler(engine *achievement.Engine, awards *store.AchievementStore, clk clock.Clock, hub *websocket.Hub, logger *slog.Logger) *AchievementHandler {
	return &AchievementHandler{engine: engine, awards: awards, clock: clk, hub: hub, logger: logger}
}

// Catalog returns every achievement definition, earned or not.
func (h *AchievementHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Catalog())
}

// ListByUser returns the achievements the user has earned.
func (h *AchievementHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	earned, err := h.awards.ListByUser(userID)
	if err != nil {
		h.logger.Error("list achievements", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list achievements")
		return
	}
	writeJSON(w, http.StatusOK, earned)
}

// Evaluate re-checks every definition for the user and awards any that
// now qualify. Safe to call repeatedly; already-held achievements are
// skipped.
func (h *AchievementHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	newCodes, err := h.engine.Evaluate(userID, h.clock.Now())
	if errors.Is(err, store.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.logger.Error("achievement evaluation", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "evaluation failed")
		return
	}

	if len(newCodes) > 0 {
		h.hub.Broadcast(websocket.Event{
			Type:    websocket.EventAchievementUnlock,
			Payload: map[string]any{"user_id": userID, "codes": newCodes},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"new_achievements": newCodes})
}
