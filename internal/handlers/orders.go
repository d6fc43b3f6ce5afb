package handlers

import (
	"net/http"

	"github.com/Sguobi-git/Orders-App/internal/inventory"
	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/orders"
	"github.com/Sguobi-git/Orders-App/internal/reconcile"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
	"github.com/Sguobi-git/Orders-App/internal/websocket"
)

// EditsRequest carries the view as it was served and the user's edited copy
type EditsRequest struct {
	Before sheets.Table `json:"before"`
	Table  sheets.Table `json:"table"`
}

// DeleteRequest names the order to delete and, on the second call, the confirmation token
type DeleteRequest struct {
	Key   reconcile.Key `json:"key"`
	Token string        `json:"token"`
}

func orderFilter(req *http.Request) orders.Filter {
	q := req.URL.Query()
	return orders.Filter{
		Section: q.Get("section"),
		Status:  q.Get("status"),
		Search:  q.Get("search"),
	}
}

// listOrders returns the filtered order table with the choices the editor needs
func (r *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	view, err := r.Orders.View(req.Context(), orderFilter(req))
	if err != nil {
		respondRemoteError(w, "orders", err)
		return
	}
	sections, err := r.Orders.Sections(req.Context())
	if err != nil {
		respondRemoteError(w, "sections", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"show":     currentSession(req).Show,
		"table":    view,
		"sections": sections,
		"statuses": models.EditableStatuses,
	})
}

func (r *Router) orderStats(w http.ResponseWriter, req *http.Request) {
	view, err := r.Orders.View(req.Context(), orderFilter(req))
	if err != nil {
		respondRemoteError(w, "orders", err)
		return
	}
	respondJSON(w, http.StatusOK, orders.ComputeStats(view))
}

// applyEdits reconciles an edited table against the sheet
func (r *Router) applyEdits(w http.ResponseWriter, req *http.Request) {
	var body EditsRequest
	if err := decode(req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if len(body.Before.Columns) == 0 {
		respondError(w, http.StatusBadRequest, "before is required")
		return
	}

	sess := currentSession(req)
	res, _, err := r.Orders.ApplyEdits(req.Context(), sess, &body.Before, &body.Table)
	if len(res.Applied) > 0 {
		r.notify(websocket.Event{Type: websocket.EventOrdersChanged, Show: sess.Show, By: sess.Initials})
	}
	if err != nil {
		// updates written before the failure stay applied
		status, message := serviceErrorStatus(err)
		respondJSON(w, status, map[string]interface{}{
			"error":   message,
			"applied": res.Applied,
			"skipped": res.Skipped,
		})
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (r *Router) addOrder(w http.ResponseWriter, req *http.Request) {
	var o models.Order
	if err := decode(req, &o); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sess := currentSession(req)
	created, err := r.Orders.Add(req.Context(), sess, o)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.notify(websocket.Event{Type: websocket.EventOrdersChanged, Show: sess.Show, By: sess.Initials})
	respondJSON(w, http.StatusCreated, created)
}

// requestDelete arms a confirmation on the first call and deletes on the second
func (r *Router) requestDelete(w http.ResponseWriter, req *http.Request) {
	var body DeleteRequest
	if err := decode(req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Key.Booth == "" {
		respondError(w, http.StatusBadRequest, "key.booth is required")
		return
	}

	sess := currentSession(req)
	res, err := r.Orders.RequestDelete(req.Context(), sess, body.Key, body.Token)
	if saveErr := r.saveSession(req, sess); saveErr != nil && err == nil {
		respondError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if res.Outcome == reconcile.DeleteCompleted {
		r.notify(websocket.Event{Type: websocket.EventOrdersChanged, Show: sess.Show, By: sess.Initials})
	}
	respondJSON(w, http.StatusOK, res)
}

func (r *Router) cancelDelete(w http.ResponseWriter, req *http.Request) {
	sess := currentSession(req)
	r.Orders.CancelDelete(sess)
	if err := r.saveSession(req, sess); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// getInventory returns stock levels and the item choices of the add form
func (r *Router) getInventory(w http.ResponseWriter, req *http.Request) {
	items, warnings, err := r.Inventory.Items(req.Context())
	if err != nil {
		respondRemoteError(w, "inventory", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":     items,
		"lowStock":  inventory.LowStock(items),
		"available": inventory.AvailableItems(items),
		"colors":    models.Colors,
		"types":     models.OrderTypes,
		"statuses":  models.FormStatuses,
		"warnings":  warnings,
	})
}

func (r *Router) getDashboard(w http.ResponseWriter, req *http.Request) {
	sum, err := r.Dashboard.Summary(req.Context(), currentSession(req).Show)
	if err != nil {
		respondRemoteError(w, "dashboard", err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}
