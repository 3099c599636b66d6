package notification

import (
	"net/http"

	"github.com/klokku/pennywise/internal/rest"
)

type Handler struct {
	feed *Feed
}

func NewHandler(feed *Feed) *Handler {
	return &Handler{feed: feed}
}

// List godoc
// @Summary Recent status messages
// @Description Notices emitted by mutations, newest first
// @Tags Notification
// @Produce json
// @Success 200 {array} Notice
// @Router /api/notifications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.feed.Recent())
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.feed.Clear()
	w.WriteHeader(http.StatusNoContent)
}
