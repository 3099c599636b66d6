package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/pennywise/internal/rest"
	"github.com/klokku/pennywise/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	ID          string          `json:"id,omitempty"`
	Type        Type            `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

// Service is the part of the state store the handler needs.
type Service interface {
	Transactions() []Transaction
	AddTransaction(ctx context.Context, in Input) (Transaction, error)
	UpdateTransaction(ctx context.Context, t Transaction) (bool, error)
	DeleteTransaction(ctx context.Context, id string) bool
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// List godoc
// @Summary List transactions
// @Description Most recently added first unless a sort key is given. from/to restrict the date range when both are set.
// @Tags Transaction
// @Produce json
// @Param sort query string false "id, type, amount, category, date or description"
// @Param direction query string false "asc (default) or desc"
// @Param from query string false "Range start (YYYY-MM-DD or RFC3339)"
// @Param to query string false "Range end, inclusive of the whole day"
// @Success 200 {array} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/transactions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	loc := h.clock.Location()

	from, err := rest.ParseDate(query.Get("from"), loc)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from date", "from must be YYYY-MM-DD or RFC3339")
		return
	}
	to, err := rest.ParseDate(query.Get("to"), loc)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid to date", "to must be YYYY-MM-DD or RFC3339")
		return
	}
	direction, err := ParseDirection(query.Get("direction"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid direction", err.Error())
		return
	}

	transactions := FilterByDateRange(h.service.Transactions(), from, to)
	if sortParam := query.Get("sort"); sortParam != "" {
		key, err := ParseSortKey(sortParam)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid sort key", err.Error())
			return
		}
		transactions = Sort(transactions, key, direction)
	}

	result := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		result = append(result, ToDTO(t))
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Add a transaction
// @Tags Transaction
// @Accept json
// @Produce json
// @Param transaction body TransactionDTO true "Transaction without id"
// @Success 201 {object} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/transactions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding new transaction")
	dto, date, ok := h.decode(w, r)
	if !ok {
		return
	}

	created, err := h.service.AddTransaction(r.Context(), Input{
		Type:        dto.Type,
		Amount:      dto.Amount,
		Category:    dto.Category,
		Date:        date,
		Description: dto.Description,
	})
	if err != nil {
		rest.WriteCommandError(w, "Failed to add transaction", err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

// Update godoc
// @Summary Replace a transaction
// @Description Updating an unknown id changes nothing and still answers 204.
// @Tags Transaction
// @Accept json
// @Param id path string true "Transaction id"
// @Param transaction body TransactionDTO true "Transaction"
// @Success 204
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/transactions/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	dto, date, ok := h.decode(w, r)
	if !ok {
		return
	}
	if dto.ID != "" && dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction id in request body", "")
		return
	}

	updated, err := h.service.UpdateTransaction(r.Context(), Transaction{
		ID:          id,
		Type:        dto.Type,
		Amount:      dto.Amount,
		Category:    dto.Category,
		Date:        date,
		Description: dto.Description,
	})
	if err != nil {
		rest.WriteCommandError(w, "Failed to update transaction", err)
		return
	}
	if !updated {
		log.Debugf("transaction %s not found, nothing updated", id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a transaction
// @Description Deleting an unknown id is a no-op.
// @Tags Transaction
// @Param id path string true "Transaction id"
// @Success 204
// @Router /api/transactions/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.service.DeleteTransaction(r.Context(), id) {
		log.Debugf("transaction %s not found, nothing deleted", id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (TransactionDTO, time.Time, bool) {
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return dto, time.Time{}, false
	}
	date, err := rest.ParseDate(dto.Date, h.clock.Location())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", "date must be YYYY-MM-DD or RFC3339")
		return dto, time.Time{}, false
	}
	return dto, date, true
}

func ToDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Category:    t.Category,
		Date:        t.Date.Format(time.RFC3339),
		Description: t.Description,
	}
}
