package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/squeakyapp/squeaky/internal/model"
	"github.com/squeakyapp/squeaky/internal/store"
)

type GroupHandler struct {
	groups *store.GroupStore
	stats  *store.StatsStore
	logs   *store.LogStore
	logger *slog.Logger
}

func NewGroupHandler(groups *store.GroupStore, stats *store.StatsStore, logs *store.LogStore, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{groups: groups, stats: stats, logs: logs, logger: logger}
}

type groupRequest struct {
	OwnerID     int64  `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	group, err := h.groups.Create(req.OwnerID, req.Name, req.Description)
	if err != nil {
		h.logger.Error("create group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create group")
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	groups, err := h.groups.ListByMember(userID)
	if err != nil {
		h.logger.Error("list groups", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list groups")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	group, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	group, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	updated, err := h.groups.Update(group.ID, req.Name, req.Description)
	if err != nil {
		h.logger.Error("update group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update group")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	group, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.groups.Delete(group.ID); err != nil {
		h.logger.Error("delete group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete group")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	group, ok := h.lookup(w, r)
	if !ok {
		return
	}

	members, err := h.groups.ListMembers(group.ID)
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

type memberRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	group, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleMember
	}
	if role != model.RoleAdmin && role != model.RoleMember {
		writeError(w, http.StatusBadRequest, "role must be admin or member")
		return
	}

	existing, err := h.groups.GetMember(group.ID, req.UserID)
	if err != nil {
		h.logger.Error("check member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add member")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "user is already a member")
		return
	}

	member, err := h.groups.AddMember(group.ID, req.UserID, role)
	if err != nil {
		h.logger.Error("add member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add member")
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

// RemoveMember removes a member from the group. The owner cannot be
// removed; ownership must be transferred first.
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	group, ok := h.lookup(w, r)
	if !ok {
		return
	}

	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if userID == group.OwnerID {
		writeError(w, http.StatusBadRequest, "the owner cannot leave the group; transfer ownership first")
		return
	}

	member, err := h.groups.GetMember(group.ID, userID)
	if err != nil {
		h.logger.Error("get member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	if err := h.groups.RemoveMember(group.ID, userID); err != nil {
		h.logger.Error("remove member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove member")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

type transferRequest struct {
	NewOwnerID int64 `json:"new_owner_id"`
}

func (h *GroupHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	group, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	member, err := h.groups.GetMember(group.ID, req.NewOwnerID)
	if err != nil {
		h.logger.Error("get member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to transfer ownership")
		return
	}
	if member == nil {
		writeError(w, http.StatusBadRequest, "new owner must already be a member")
		return
	}

	updated, err := h.groups.TransferOwnership(group.ID, req.NewOwnerID)
	if err != nil {
		h.logger.Error("transfer ownership", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to transfer ownership")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Leaderboard returns per-member coin totals for the group, highest first.
func (h *GroupHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	group, ok := h.lookup(w, r)
	if !ok {
		return
	}

	entries, err := h.stats.Leaderboard(group.ID)
	if err != nil {
		h.logger.Error("leaderboard", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Activity returns the group's most recent cleaning events with item
// and user names attached.
func (h *GroupHandler) Activity(w http.ResponseWriter, r *http.Request) {
	group, ok := h.lookup(w, r)
	if !ok {
		return
	}

	entries, err := h.logs.RecentActivity(group.ID, 50)
	if err != nil {
		h.logger.Error("recent activity", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load activity")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *GroupHandler) lookup(w http.ResponseWriter, r *http.Request) (*model.Group, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	group, err := h.groups.GetByID(id)
	if err != nil {
		h.logger.Error("get group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get group")
		return nil, false
	}
	if group == nil {
		writeError(w, http.StatusNotFound, "group not found")
		return nil, false
	}
	return group, true
}
