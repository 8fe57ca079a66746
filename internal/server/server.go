package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/squeakyapp/squeaky/internal/achievement"
	"github.com/squeakyapp/squeaky/internal/cleaning"
	"github.com/squeakyapp/squeaky/internal/clock"
	"github.com/squeakyapp/squeaky/internal/handler"
	"github.com/squeakyapp/squeaky/internal/middleware"
	"github.com/squeakyapp/squeaky/internal/store"
	ws "github.com/squeakyapp/squeaky/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	userH        *handler.UserHandler
	groupH       *handler.GroupHandler
	itemH        *handler.ItemHandler
	inviteH      *handler.InviteHandler
	achievementH *handler.AchievementHandler
	jobsH        *handler.JobsHandler
	userStore    *store.UserStore
	inviteStore  *store.InviteStore
	logger       *slog.Logger
}

func New(db *sql.DB, clk clock.Clock, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	groupStore := store.NewGroupStore(db)
	itemStore := store.NewItemStore(db)
	inviteStore := store.NewInviteStore(db)
	logStore := store.NewLogStore(db)
	statsStore := store.NewStatsStore(db)
	achievementStore := store.NewAchievementStore(db)

	cleaner := cleaning.NewService(db, clk, logger.With("component", "cleaning"))
	engine := achievement.NewEngine(statsStore, achievementStore, logger.With("component", "achievements"))

	return &Server{
		db:           db,
		hub:          hub,
		userH:        handler.NewUserHandler(userStore, statsStore, logStore, logger.With("component", "user")),
		groupH:       handler.NewGroupHandler(groupStore, statsStore, logStore, logger.With("component", "group")),
		itemH:        handler.NewItemHandler(itemStore, logStore, cleaner, engine, clk, hub, logger.With("component", "item")),
		inviteH:      handler.NewInviteHandler(inviteStore, groupStore, clk, logger.With("component", "invite")),
		achievementH: handler.NewAchievementHandler(engine, achievementStore, clk, hub, logger.With("component", "achievement")),
		jobsH:        handler.NewJobsHandler(userStore, inviteStore, clk, logger.With("component", "jobs")),
		userStore:    userStore,
		inviteStore:  inviteStore,
		logger:       logger,
	}
}

// UserStore returns the user store for maintenance tasks.
func (s *Server) UserStore() *store.UserStore {
	return s.userStore
}

// InviteStore returns the invite store for maintenance tasks.
func (s *Server) InviteStore() *store.InviteStore {
	return s.inviteStore
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Users
	mux.HandleFunc("POST /api/users", s.userH.Create)
	mux.HandleFunc("GET /api/users/{id}", s.userH.Get)
	mux.HandleFunc("GET /api/users/{id}/stats", s.userH.Stats)
	mux.HandleFunc("GET /api/users/{id}/history", s.userH.History)
	mux.HandleFunc("GET /api/users/{id}/achievements", s.achievementH.ListByUser)
	mux.HandleFunc("POST /api/users/{id}/achievements/evaluate", s.achievementH.Evaluate)

	// Groups
	mux.HandleFunc("POST /api/groups", s.groupH.Create)
	mux.HandleFunc("GET /api/groups", s.groupH.List)
	mux.HandleFunc("GET /api/groups/{id}", s.groupH.Get)
	mux.HandleFunc("PUT /api/groups/{id}", s.groupH.Update)
	mux.HandleFunc("DELETE /api/groups/{id}", s.groupH.Delete)
	mux.HandleFunc("GET /api/groups/{id}/members", s.groupH.ListMembers)
	mux.HandleFunc("POST /api/groups/{id}/members", s.groupH.AddMember)
	mux.HandleFunc("DELETE /api/groups/{id}/members/{userID}", s.groupH.RemoveMember)
	mux.HandleFunc("POST /api/groups/{id}/transfer", s.groupH.TransferOwnership)
	mux.HandleFunc("GET /api/groups/{id}/leaderboard", s.groupH.Leaderboard)
	mux.HandleFunc("GET /api/groups/{id}/activity", s.groupH.Activity)
	mux.HandleFunc("GET /api/groups/{id}/invites", s.inviteH.ListByGroup)

	// Invites
	mux.HandleFunc("POST /api/invites", s.inviteH.Create)
	mux.HandleFunc("DELETE /api/invites/{id}", s.inviteH.Revoke)
	mux.HandleFunc("POST /api/invites/accept", s.inviteH.Accept)

	// Cleaning items
	mux.HandleFunc("POST /api/items", s.itemH.Create)
	mux.HandleFunc("GET /api/items", s.itemH.List)
	mux.HandleFunc("GET /api/items/{id}", s.itemH.Get)
	mux.HandleFunc("PUT /api/items/{id}", s.itemH.Update)
	mux.HandleFunc("DELETE /api/items/{id}", s.itemH.Delete)
	mux.HandleFunc("GET /api/items/{id}/status", s.itemH.Status)
	mux.HandleFunc("POST /api/items/{id}/clean", s.itemH.Clean)
	mux.HandleFunc("PUT /api/items/{id}/move", s.itemH.Move)
	mux.HandleFunc("PUT /api/items/reorder", s.itemH.Reorder)
	mux.HandleFunc("GET /api/items/{id}/logs", s.itemH.Logs)

	// Achievements
	mux.HandleFunc("GET /api/achievements", s.achievementH.Catalog)

	// Maintenance
	mux.HandleFunc("POST /api/jobs/expire-streaks", s.jobsH.ExpireStreaks)
	mux.HandleFunc("POST /api/jobs/cleanup-invites", s.jobsH.CleanupInvites)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.Handler(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
