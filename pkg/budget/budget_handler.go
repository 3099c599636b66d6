package budget

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/klokku/pennywise/internal/rest"
	"github.com/klokku/pennywise/pkg/transaction"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	Category transaction.Category `json:"category"`
	Limit    decimal.Decimal      `json:"limit"`
}

// Service is the part of the state store the handler needs.
type Service interface {
	Budgets() []Budget
	UpdateBudgets(ctx context.Context, budgets []Budget) error
}

type BudgetHandler struct {
	budgetService Service
}

func NewBudgetHandler(budgetService Service) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

// GetAll godoc
// @Summary List budgets
// @Tags Budget
// @Produce json
// @Success 200 {array} BudgetDTO
// @Router /api/budgets [get]
func (handler *BudgetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, budgetsToDTO(handler.budgetService.Budgets()))
}

// ReplaceAll godoc
// @Summary Replace all budgets
// @Description The list replaces the current budgets entirely; omitted categories lose their budget.
// @Tags Budget
// @Accept json
// @Produce json
// @Param budgets body []BudgetDTO true "Complete budget list"
// @Success 200 {array} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budgets [put]
func (handler *BudgetHandler) ReplaceAll(w http.ResponseWriter, r *http.Request) {
	log.Debug("Replacing budgets")
	var budgetsDTO []BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&budgetsDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	budgets := make([]Budget, 0, len(budgetsDTO))
	for _, dto := range budgetsDTO {
		budgets = append(budgets, DTOToBudget(dto))
	}
	if err := handler.budgetService.UpdateBudgets(r.Context(), budgets); err != nil {
		rest.WriteCommandError(w, "Failed to update budgets", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, budgetsToDTO(handler.budgetService.Budgets()))
}

func BudgetToDTO(b Budget) BudgetDTO {
	return BudgetDTO{Category: b.Category, Limit: b.Limit}
}

func DTOToBudget(dto BudgetDTO) Budget {
	return Budget{Category: dto.Category, Limit: dto.Limit}
}

func budgetsToDTO(budgets []Budget) []BudgetDTO {
	result := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		result = append(result, BudgetToDTO(b))
	}
	return result
}
