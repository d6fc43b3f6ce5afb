package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/middleware"
	"github.com/Sguobi-git/Orders-App/internal/session"
	"github.com/Sguobi-git/Orders-App/internal/utils"
	logger "github.com/sirupsen/logrus"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePasswordRequest represents a password change by the logged-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SessionView is what the UI learns about the current session
type SessionView struct {
	Email         string                 `json:"email"`
	Initials      string                 `json:"initials"`
	IsAdmin       bool                   `json:"isAdmin"`
	Show          string                 `json:"show"`
	ExpiresAt     time.Time              `json:"expiresAt"`
	PendingDelete *session.PendingDelete `json:"pendingDelete,omitempty"`
}

func viewSession(s *session.Session) SessionView {
	return SessionView{
		Email:         s.Email,
		Initials:      s.Initials,
		IsAdmin:       s.IsAdmin,
		Show:          s.Show,
		ExpiresAt:     time.Unix(s.ExpiresAt, 0).UTC(),
		PendingDelete: s.PendingDelete,
	}
}

// login verifies credentials and starts a session on the first configured show
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := decode(req, &loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	account, err := r.Accounts.Login(loginReq.Email, loginReq.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	sess := session.New(account.Email, account.Initials, account.IsAdmin, r.Config.DefaultShow(), r.Config.SessionTTL)
	if err := r.Sessions.Create(req.Context(), sess); err != nil {
		logger.Errorf("❌ Failed to create session: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	token, err := utils.GenerateSessionToken(sess.ID, sess.Email, r.Config.JWTSecret, r.Config.SessionTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(sess.ExpiresAt, 0),
		HttpOnly: true,
		Secure:   strings.HasPrefix(r.Config.BaseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
	logger.Infof("🔓 %s logged in", account.Email)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"session": viewSession(sess),
	})
}

// register handles self-registration of a corporate account
func (r *Router) register(w http.ResponseWriter, req *http.Request) {
	var regReq RegisterRequest
	if err := decode(req, &regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	account, err := r.Accounts.Register(regReq.Email, regReq.Password, regReq.ConfirmPassword)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful! You can now log in.",
		"user":    account.View(),
	})
}

// resetPassword issues a new generated password, shown once
func (r *Router) resetPassword(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decode(req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	password, err := r.Accounts.ResetPassword(req.Context(), body.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message":  "Password reset successful. Save this password now, it will not be shown again.",
		"password": password,
	})
}

// logout ends the session and clears the cookie
func (r *Router) logout(w http.ResponseWriter, req *http.Request) {
	sess := currentSession(req)
	if err := r.Sessions.Delete(req.Context(), sess.ID); err != nil {
		logger.Warnf("⚠️ Failed to delete session %s: %v", sess.ID, err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (r *Router) getSession(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, viewSession(currentSession(req)))
}

func (r *Router) listShows(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"shows":   r.Config.Shows,
		"current": currentSession(req).Show,
	})
}

// setShow switches the active show of the session
func (r *Router) setShow(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Show string `json:"show"`
	}
	if err := decode(req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !r.Config.HasShow(body.Show) {
		respondError(w, http.StatusBadRequest, "Unknown show")
		return
	}

	sess := currentSession(req)
	sess.Show = body.Show
	if err := r.saveSession(req, sess); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	respondJSON(w, http.StatusOK, viewSession(sess))
}

func (r *Router) changePassword(w http.ResponseWriter, req *http.Request) {
	var body ChangePasswordRequest
	if err := decode(req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	sess := currentSession(req)
	if err := r.Accounts.ChangePassword(sess.Email, body.CurrentPassword, body.NewPassword, body.ConfirmPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
