package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// FeedbackRequest is a message left through the feedback page
type FeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r *Router) submitFeedback(w http.ResponseWriter, req *http.Request) {
	var body FeedbackRequest
	if err := decode(req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Email == "" {
		body.Email = currentSession(req).Email
	}
	f, err := r.Feedback.Submit(req.Context(), body.Name, body.Email, body.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, f)
}

func (r *Router) listFeedback(w http.ResponseWriter, req *http.Request) {
	all, err := r.Feedback.List(req.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, all)
}

func (r *Router) replyFeedback(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Reply string `json:"reply"`
	}
	if err := decode(req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	f, err := r.Feedback.Reply(req.Context(), mux.Vars(req)["id"], body.Reply, currentSession(req).Initials)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, f)
}
