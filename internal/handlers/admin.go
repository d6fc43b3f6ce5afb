package handlers

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// CreateUserRequest is an admin request to add an account
type CreateUserRequest struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func (r *Router) listUsers(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.Accounts.List())
}

// createUser adds an account with a generated password returned once
func (r *Router) createUser(w http.ResponseWriter, req *http.Request) {
	var body CreateUserRequest
	if err := decode(req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	account, password, err := r.Accounts.CreateUser(body.Email, body.IsAdmin)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":     account.View(),
		"password": password,
	})
}

func (r *Router) deleteUser(w http.ResponseWriter, req *http.Request) {
	email, err := url.PathUnescape(mux.Vars(req)["email"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid email")
		return
	}
	if err := r.Accounts.DeleteUser(req.Context(), currentSession(req).Email, email); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
