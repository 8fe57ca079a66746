package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/squeakyapp/squeaky/internal/achievement"
	"github.com/squeakyapp/squeaky/internal/cleaning"
	"github.com/squeakyapp/squeaky/internal/clock"
	"github.com/squeakyapp/squeaky/internal/dirt"
	"github.com/squeakyapp/squeaky/internal/model"
	"github.com/squeakyapp/squeaky/internal/store"
	"github.com/squeakyapp/squeaky/internal/websocket"
)

type ItemHandler struct {
	items   *store.ItemStore
	logs    *store.LogStore
	cleaner *cleaning.Service
	engine  *achievement.Engine
	clock   clock.Clock
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewItemHandler(items *store.ItemStore, logs *store.LogStore, cleaner *cleaning.Service, engine *achievement.Engine, clk clock.Clock, hub *websocket.Hub, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		items:   items,
		logs:    logs,
		cleaner: cleaner,
		engine:  engine,
		clock:   clk,
		hub:     hub,
		logger:  logger,
	}
}

type itemRequest struct {
	GroupID                int64  `json:"group_id"`
	ParentID               *int64 `json:"parent_id"`
	Name                   string `json:"name"`
	Description            string `json:"description"`
	CleaningFrequencyHours *int   `json:"cleaning_frequency_hours"`
	BaseCoinReward         int    `json:"base_coin_reward"`
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.BaseCoinReward < 0 {
		writeError(w, http.StatusBadRequest, "base_coin_reward must not be negative")
		return
	}

	item, err := h.items.Create(req.GroupID, req.ParentID, req.Name, req.Description, req.CleaningFrequencyHours, req.BaseCoinReward)
	if err != nil {
		if isStructureError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("create item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.hub.Broadcast(websocket.Event{Type: websocket.EventItemCreated, GroupID: item.GroupID, Payload: item})
	writeJSON(w, http.StatusCreated, item)
}

// List returns all items for the group in the group_id query parameter,
// each decorated with its current dirtiness and status.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(r.URL.Query().Get("group_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "group_id is required")
		return
	}

	items, err := h.items.ListByGroup(groupID)
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	now := h.clock.Now()
	views := make([]dirt.ItemWithStatus, 0, len(items))
	for _, item := range items {
		views = append(views, dirt.Describe(item, now))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dirt.Describe(*item, h.clock.Now()))
}

// Status returns the dirtiness-and-status view used by display layers.
func (h *ItemHandler) Status(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	now := h.clock.Now()
	d := dirt.Dirtiness(*item, now)
	writeJSON(w, http.StatusOK, map[string]any{
		"dirtiness":        d,
		"status":           dirt.StatusOf(d),
		"is_overdue":       dirt.IsOverdue(d),
		"needs_attention":  dirt.NeedsAttention(d),
		"is_freshly_clean": dirt.IsFreshlyClean(d),
		"coins_available":  dirt.CoinsAvailable(*item, now),
	})
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	updated, err := h.items.Update(item.ID, req.Name, req.Description, req.CleaningFrequencyHours, req.BaseCoinReward)
	if err != nil {
		h.logger.Error("update item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	h.hub.Broadcast(websocket.Event{Type: websocket.EventItemUpdated, GroupID: updated.GroupID, Payload: updated})
	writeJSON(w, http.StatusOK, updated)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.items.Delete(item.ID); err != nil {
		h.logger.Error("delete item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.hub.Broadcast(websocket.Event{Type: websocket.EventItemDeleted, GroupID: item.GroupID, Payload: map[string]int64{"id": item.ID}})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type moveRequest struct {
	NewParentID *int64 `json:"new_parent_id"`
}

func (h *ItemHandler) Move(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	moved, err := h.items.Move(item.ID, req.NewParentID)
	if err != nil {
		if isStructureError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("move item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to move item")
		return
	}

	h.hub.Broadcast(websocket.Event{Type: websocket.EventItemMoved, GroupID: moved.GroupID, Payload: moved})
	writeJSON(w, http.StatusOK, moved)
}

type reorderRequest struct {
	Orders map[int64]int `json:"orders"`
}

func (h *ItemHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.items.Reorder(req.Orders); err != nil {
		h.logger.Error("reorder items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reorder items")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

type cleanRequest struct {
	UserID int64  `json:"user_id"`
	Note   string `json:"note"`
}

type cleanResponse struct {
	Log             *model.CleaningLog `json:"log"`
	NewAchievements []achievement.Code `json:"new_achievements"`
}

// Clean marks the item as cleaned by the requesting user. Achievement
// evaluation runs after the cleaning transaction commits: a failure there
// is logged but never undoes the clean, since evaluation is idempotent
// and the maintenance endpoint can re-run it.
func (h *ItemHandler) Clean(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req cleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	entry, err := h.cleaner.MarkAsCleaned(id, req.UserID, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, cleaning.ErrItemNotFound):
			writeError(w, http.StatusNotFound, "item not found")
		case errors.Is(err, cleaning.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error("mark as cleaned", "item_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to mark as cleaned")
		}
		return
	}

	newCodes, err := h.engine.Evaluate(req.UserID, h.clock.Now())
	if err != nil {
		h.logger.Error("achievement evaluation", "user_id", req.UserID, "error", err)
	}

	h.hub.Broadcast(websocket.Event{Type: websocket.EventItemCleaned, GroupID: entry.GroupID, Payload: entry})
	if len(newCodes) > 0 {
		h.hub.Broadcast(websocket.Event{
			Type:    websocket.EventAchievementUnlock,
			GroupID: entry.GroupID,
			Payload: map[string]any{"user_id": req.UserID, "codes": newCodes},
		})
	}

	writeJSON(w, http.StatusCreated, cleanResponse{Log: entry, NewAchievements: newCodes})
}

// Logs returns the item's cleaning history, newest first.
func (h *ItemHandler) Logs(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	logs, err := h.logs.ListByItem(item.ID, 100)
	if err != nil {
		h.logger.Error("list item logs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list logs")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *ItemHandler) lookup(w http.ResponseWriter, r *http.Request) (*model.Item, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	item, err := h.items.GetByID(id)
	if err != nil {
		h.logger.Error("get item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return nil, false
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return nil, false
	}
	return item, true
}

func isStructureError(err error) bool {
	return errors.Is(err, store.ErrParentNotFound) ||
		errors.Is(err, store.ErrCrossGroupParent) ||
		errors.Is(err, store.ErrMoveIntoSelf) ||
		errors.Is(err, store.ErrMoveIntoChild)
}
