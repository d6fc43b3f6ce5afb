package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/accounts"
	"github.com/Sguobi-git/Orders-App/internal/buildinfo"
	"github.com/Sguobi-git/Orders-App/internal/checklist"
	"github.com/Sguobi-git/Orders-App/internal/config"
	"github.com/Sguobi-git/Orders-App/internal/dashboard"
	"github.com/Sguobi-git/Orders-App/internal/feedback"
	"github.com/Sguobi-git/Orders-App/internal/inventory"
	"github.com/Sguobi-git/Orders-App/internal/middleware"
	"github.com/Sguobi-git/Orders-App/internal/orders"
	"github.com/Sguobi-git/Orders-App/internal/reconcile"
	"github.com/Sguobi-git/Orders-App/internal/session"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
	"github.com/Sguobi-git/Orders-App/internal/websocket"
	"github.com/gorilla/mux"
	logger "github.com/sirupsen/logrus"
)

// Invalidator drops cached spreadsheet reads
type Invalidator interface {
	Invalidate()
}

// Deps are the services the router serves
type Deps struct {
	Config     *config.Config
	Accounts   *accounts.Service
	Sessions   session.Store
	Orders     *orders.Service
	Inventory  *inventory.Service
	Dashboard  *dashboard.Service
	Checklists *checklist.Service
	Feedback   *feedback.Service
	Hub        *websocket.Hub
	Cache      Invalidator
}

// Router wraps the mux router and the services behind it
type Router struct {
	*mux.Router
	Deps
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(d Deps) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		Deps:   d,
	}
	r.Use(middleware.RequestLogger)

	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	requireSession := middleware.NewAuth(d.Config.JWTSecret, d.Sessions).Require
	r.Handle("/auth/logout", requireSession(http.HandlerFunc(r.logout))).Methods("POST")
	r.Handle("/ws", requireSession(http.HandlerFunc(r.serveWs))).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/reset", r.resetPassword).Methods("POST")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(requireSession)
	api.HandleFunc("/session", r.getSession).Methods("GET")
	api.HandleFunc("/session/show", r.setShow).Methods("PUT")
	api.HandleFunc("/shows", r.listShows).Methods("GET")
	api.HandleFunc("/account/password", r.changePassword).Methods("POST")

	api.HandleFunc("/dashboard", r.getDashboard).Methods("GET")
	api.HandleFunc("/refresh", r.refresh).Methods("POST")

	api.HandleFunc("/orders", r.listOrders).Methods("GET")
	api.HandleFunc("/orders", r.addOrder).Methods("POST")
	api.HandleFunc("/orders/edits", r.applyEdits).Methods("POST")
	api.HandleFunc("/orders/delete", r.requestDelete).Methods("POST")
	api.HandleFunc("/orders/delete", r.cancelDelete).Methods("DELETE")
	api.HandleFunc("/orders/stats", r.orderStats).Methods("GET")
	api.HandleFunc("/inventory", r.getInventory).Methods("GET")

	api.HandleFunc("/checklists", r.listChecklists).Methods("GET")
	api.HandleFunc("/checklists/toggle", r.toggleChecklist).Methods("POST")
	api.HandleFunc("/checklists/booths/{booth}/pdf", r.boothPDF).Methods("GET")

	api.HandleFunc("/feedback", r.submitFeedback).Methods("POST")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", r.listUsers).Methods("GET")
	admin.HandleFunc("/users", r.createUser).Methods("POST")
	admin.HandleFunc("/users/{email}", r.deleteUser).Methods("DELETE")
	admin.HandleFunc("/feedback", r.listFeedback).Methods("GET")
	admin.HandleFunc("/feedback/{id}/reply", r.replyFeedback).Methods("POST")

	if d.Config.FrontendDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(d.Config.FrontendDir)))
	}

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"build":  buildinfo.Current(time.Now()),
	})
}

// refresh drops cached spreadsheet reads so the next request hits the sheet
func (r *Router) refresh(w http.ResponseWriter, req *http.Request) {
	if r.Cache != nil {
		r.Cache.Invalidate()
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (r *Router) serveWs(w http.ResponseWriter, req *http.Request) {
	sess := currentSession(req)
	websocket.ServeWs(r.Hub, w, req, sess.Email, sess.Show)
}

func (r *Router) notify(ev websocket.Event) {
	if r.Hub != nil {
		r.Hub.Broadcast(ev)
	}
}

func currentSession(req *http.Request) *session.Session {
	sess, _ := middleware.SessionFrom(req.Context())
	return sess
}

// saveSession persists in-flight session changes such as delete confirmations
func (r *Router) saveSession(req *http.Request, sess *session.Session) error {
	if err := r.Sessions.Save(req.Context(), sess); err != nil {
		logger.Errorf("❌ Failed to save session %s: %v", sess.ID, err)
		return err
	}
	return nil
}

func decode(req *http.Request, v interface{}) error {
	return json.NewDecoder(req.Body).Decode(v)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps service errors to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := serviceErrorStatus(err)
	respondError(w, status, message)
}

// serviceErrorStatus picks the HTTP status and message reported for err
func serviceErrorStatus(err error) (int, string) {
	var validation *reconcile.ValidationError
	var remote *reconcile.RemoteError
	var missing *sheets.MissingColumnError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()
	case errors.Is(err, accounts.ErrInvalidDomain),
		errors.Is(err, accounts.ErrPasswordMismatch),
		errors.Is(err, accounts.ErrPasswordTooShort),
		errors.Is(err, feedback.ErrEmptyMessage),
		errors.Is(err, feedback.ErrEmptyReply):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, accounts.ErrExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, accounts.ErrInvalidCredentials),
		errors.Is(err, accounts.ErrWrongPassword):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, accounts.ErrSelfDelete):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, reconcile.ErrRowCountMismatch),
		errors.Is(err, reconcile.ErrColumnMismatch),
		errors.Is(err, reconcile.ErrStaleRow):
		return http.StatusConflict, err.Error()+", refresh and try again"
	case errors.Is(err, accounts.ErrNotFound),
		errors.Is(err, feedback.ErrNotFound),
		errors.Is(err, sheets.ErrNoMatch),
		errors.Is(err, sheets.ErrWorksheetNotFound):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, missing.Error()
	case errors.As(err, &remote):
		return http.StatusBadGateway, remote.Error()
	default:
		logger.Errorf("❌ %v", err)
		return http.StatusInternalServerError, "Internal error"
	}
}

// respondRemoteError reports a failed spreadsheet read
func respondRemoteError(w http.ResponseWriter, what string, err error) {
	if errors.Is(err, sheets.ErrWorksheetNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	logger.Errorf("❌ Failed to load %s: %v", what, err)
	respondError(w, http.StatusBadGateway, "Failed to load "+what)
}
