package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/squeakyapp/squeaky/internal/clock"
	"github.com/squeakyapp/squeaky/internal/model"
	"github.com/squeakyapp/squeaky/internal/store"
)

type InviteHandler struct {
	invites *store.InviteStore
	groups  *store.GroupStore
	clock   clock.Clock
	logger  *slog.Logger
}

func NewInviteHandler(invites *store.InviteStore, groups *store.GroupStore, clk clock.Clock, logger *slog.Logger) *InviteHandler {
	return &InviteHandler{invites: invites, groups: groups, clock: clk, logger: logger}
}

type inviteRequest struct {
	GroupID   int64            `json:"group_id"`
	CreatedBy int64            `json:"created_by"`
	Type      model.InviteType `json:"type"`
	ExpiresAt *time.Time       `json:"expires_at"`
}

func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, "type must be permanent, single_use or time_limited")
		return
	}
	if req.Type == model.InviteTimeLimited && req.ExpiresAt == nil {
		writeError(w, http.StatusBadRequest, "time_limited invites require expires_at")
		return
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(h.clock.Now()) {
		writeError(w, http.StatusBadRequest, "expires_at must be in the future")
		return
	}

	member, err := h.groups.GetMember(req.GroupID, req.CreatedBy)
	if err != nil {
		h.logger.Error("check inviter membership", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create invite")
		return
	}
	if member == nil {
		writeError(w, http.StatusForbidden, "only group members can create invites")
		return
	}

	invite, err := h.invites.Create(req.GroupID, req.CreatedBy, req.Type, req.ExpiresAt)
	if err != nil {
		h.logger.Error("create invite", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create invite")
		return
	}
	writeJSON(w, http.StatusCreated, invite)
}

func (h *InviteHandler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	invites, err := h.invites.ListByGroup(groupID)
	if err != nil {
		h.logger.Error("list invites", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list invites")
		return
	}
	writeJSON(w, http.StatusOK, invites)
}

func (h *InviteHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	invite, err := h.invites.GetByID(id)
	if err != nil {
		h.logger.Error("get invite", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to revoke invite")
		return
	}
	if invite == nil {
		writeError(w, http.StatusNotFound, "invite not found")
		return
	}

	if err := h.invites.Delete(id); err != nil {
		h.logger.Error("revoke invite", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to revoke invite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

type acceptRequest struct {
	Code   string `json:"code"`
	UserID int64  `json:"user_id"`
}

// Accept redeems an invite code and joins the user to the invite's
// group as a member. Only single use invites are stamped as used on
// acceptance; permanent and time limited invites stay redeemable until
// revoked or expired.
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	invite, err := h.invites.GetByCode(req.Code)
	if err != nil {
		h.logger.Error("get invite by code", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to accept invite")
		return
	}
	if invite == nil {
		writeError(w, http.StatusNotFound, "invite not found")
		return
	}

	now := h.clock.Now()
	if !invite.IsValid(now) {
		writeError(w, http.StatusGone, "invite is expired or already used")
		return
	}

	existing, err := h.groups.GetMember(invite.GroupID, req.UserID)
	if err != nil {
		h.logger.Error("check member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to accept invite")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "user is already a member of this group")
		return
	}

	member, err := h.groups.AddMember(invite.GroupID, req.UserID, model.RoleMember)
	if err != nil {
		h.logger.Error("add member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to accept invite")
		return
	}

	if invite.Type == model.InviteSingleUse {
		if err := h.invites.MarkUsed(invite.ID, req.UserID, now); err != nil {
			h.logger.Error("mark invite used", "invite_id", invite.ID, "error", err)
		}
	}

	h.logger.Info("invite accepted", "invite_id", invite.ID, "group_id", invite.GroupID, "user_id", req.UserID)
	writeJSON(w, http.StatusOK, member)
}
