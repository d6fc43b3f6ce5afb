package handlers

import (
	"fmt"
	"net/http"

	"github.com/Sguobi-git/Orders-App/internal/checklist"
	"github.com/Sguobi-git/Orders-App/internal/websocket"
	"github.com/gorilla/mux"
	logger "github.com/sirupsen/logrus"
)

func (r *Router) checklistsConfigured(w http.ResponseWriter) bool {
	if r.Checklists == nil {
		respondError(w, http.StatusServiceUnavailable, "Checklist spreadsheet is not configured")
		return false
	}
	return true
}

// listChecklists returns checklist items grouped per booth with progress
func (r *Router) listChecklists(w http.ResponseWriter, req *http.Request) {
	if !r.checklistsConfigured(w) {
		return
	}
	q := req.URL.Query()
	f := checklist.Filter{Section: q.Get("section"), State: q.Get("state"), Search: q.Get("search")}
	if f.Section == "" {
		f.Section = checklist.AllSections
	}

	sections, err := r.Checklists.Sections(req.Context())
	if err != nil {
		respondRemoteError(w, "checklist sections", err)
		return
	}
	items, err := r.Checklists.Items(req.Context(), f.Section)
	if err != nil {
		respondRemoteError(w, "checklists", err)
		return
	}
	items = checklist.ApplyFilter(items, f)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sections": sections,
		"filter":   f,
		"progress": checklist.ComputeProgress(items),
		"booths":   checklist.GroupByBooth(items),
	})
}

func (r *Router) toggleChecklist(w http.ResponseWriter, req *http.Request) {
	if !r.checklistsConfigured(w) {
		return
	}
	var tg checklist.Toggle
	if err := decode(req, &tg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if tg.Worksheet == "" || tg.Booth == "" || tg.ItemName == "" {
		respondError(w, http.StatusBadRequest, "worksheet, booth and itemName are required")
		return
	}

	sess := currentSession(req)
	if err := r.Checklists.SetChecked(req.Context(), tg); err != nil {
		respondServiceError(w, err)
		return
	}
	logger.Infof("☑️ %s set %s/%s checked=%v", sess.Initials, tg.Booth, tg.ItemName, tg.Checked)
	r.notify(websocket.Event{Type: websocket.EventChecklistChanged, Show: sess.Show, Worksheet: tg.Worksheet, By: sess.Initials})
	respondJSON(w, http.StatusOK, tg)
}

// boothPDF renders the printable checklist of one booth
func (r *Router) boothPDF(w http.ResponseWriter, req *http.Request) {
	if !r.checklistsConfigured(w) {
		return
	}
	booth := mux.Vars(req)["booth"]
	b, err := r.Checklists.Booth(req.Context(), booth)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	pdf, err := checklist.BoothPDF(checklist.PDFConfig{Show: currentSession(req).Show, BaseURL: r.Config.BaseURL}, *b)
	if err != nil {
		logger.Errorf("❌ PDF for booth %s failed: %v", booth, err)
		respondError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"booth_%s.pdf\"", booth))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
