package currency

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/klokku/pennywise/internal/rest"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

type CurrencyDTO struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	// Example renders a sample amount, e.g. "₹1,00,000".
	Example string `json:"example,omitempty"`
}

// Service is the part of the state store the handler needs.
type Service interface {
	Currency() Currency
	SetCurrency(ctx context.Context, c Currency) error
}

type Handler struct {
	service Service
	locale  language.Tag
}

func NewHandler(service Service, locale language.Tag) *Handler {
	return &Handler{service: service, locale: locale}
}

var exampleAmount = decimal.NewFromInt(100000)

// ListCatalog godoc
// @Summary Selectable currencies
// @Tags Currency
// @Produce json
// @Success 200 {array} CurrencyDTO
// @Router /api/currencies [get]
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := Catalog()
	result := make([]CurrencyDTO, 0, len(catalog))
	for _, c := range catalog {
		result = append(result, h.toDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

// GetActive godoc
// @Summary Active display currency
// @Tags Currency
// @Produce json
// @Success 200 {object} CurrencyDTO
// @Router /api/currency [get]
func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.toDTO(h.service.Currency()))
}

// SetActive godoc
// @Summary Switch display currency
// @Description Accepts a catalog entry by name or symbol. Amounts are not converted.
// @Tags Currency
// @Accept json
// @Produce json
// @Param currency body CurrencyDTO true "Name or symbol of a catalog currency"
// @Success 200 {object} CurrencyDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/currency [put]
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	var dto CurrencyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	needle := dto.Name
	if needle == "" {
		needle = dto.Symbol
	}
	c, err := Lookup(needle)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Unknown currency", err.Error())
		return
	}
	if err := h.service.SetCurrency(r.Context(), c); err != nil {
		rest.WriteCommandError(w, "Failed to change currency", err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(h.service.Currency()))
}

func (h *Handler) toDTO(c Currency) CurrencyDTO {
	return CurrencyDTO{Symbol: c.Symbol, Name: c.Name, Example: Format(exampleAmount, c, h.locale)}
}
