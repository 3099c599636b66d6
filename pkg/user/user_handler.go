package user

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/klokku/pennywise/internal/rest"
	"github.com/klokku/pennywise/pkg/notification"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Service is the part of the state store the handler needs.
type Service interface {
	User() User
	UpdateUser(ctx context.Context, u User)
}

type Handler struct {
	userService Service
	notifier    notification.Notifier
}

func NewHandler(userService Service, notifier notification.Notifier) *Handler {
	return &Handler{
		userService: userService,
		notifier:    notifier,
	}
}

// GetCurrentUser godoc
// @Summary Get the user profile
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Router /api/user [get]
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, userToDTO(h.userService.User()))
}

// UpdateUser godoc
// @Summary Replace the user profile
// @Description Saves name and email as given. An unusual email address is reported as a warning but still saved.
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User profile"
// @Success 200 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/user [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	u := User{Name: strings.TrimSpace(dto.Name), Email: strings.TrimSpace(dto.Email)}
	if u.Email != "" {
		if err := checkmail.ValidateFormat(u.Email); err != nil {
			log.Debugf("email %q failed format check: %v", u.Email, err)
			h.notifier.Notify(r.Context(), notification.Warning, "Email address looks unusual: "+u.Email)
		}
	}

	h.userService.UpdateUser(r.Context(), u)
	rest.WriteJSON(w, http.StatusOK, userToDTO(h.userService.User()))
}

func userToDTO(u User) UserDTO {
	return UserDTO{Name: u.Name, Email: u.Email}
}
