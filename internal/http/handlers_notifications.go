package httpx

import (
	"net/http"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/service"
)

// NotificationHandlers provides HTTP handlers for the notification inbox.
type NotificationHandlers struct {
	Svc *service.NotificationService
}

// List handles GET /notifications. Query parameters: unread, limit, offset.
func (h *NotificationHandlers) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	opts := model.NotificationListOptions{
		UnreadOnly: boolQuery(r, "unread"),
		Limit:      parseIntQuery(r, "limit", 0),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	notifications, err := h.Svc.List(r.Context(), caller, opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, notifications)
}

// MarkRead handles POST /notifications/{id}/read.
func (h *NotificationHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	notification, err := h.Svc.MarkRead(r.Context(), caller, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, notification)
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandlers) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	updated, err := h.Svc.MarkAllRead(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"updated": updated})
}
