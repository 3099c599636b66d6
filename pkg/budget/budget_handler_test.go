package budget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/pennywise/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBudgetService struct {
	budgets []Budget
	failErr error
}

func (s *stubBudgetService) Budgets() []Budget { return s.budgets }

func (s *stubBudgetService) UpdateBudgets(_ context.Context, budgets []Budget) error {
	if s.failErr != nil {
		return s.failErr
	}
	if err := ValidateAll(budgets); err != nil {
		return err
	}
	s.budgets = budgets
	return nil
}

func setup(t *testing.T) (*mux.Router, *stubBudgetService) {
	t.Helper()
	service := &stubBudgetService{budgets: []Budget{{Category: transaction.Groceries, Limit: decimal.NewFromInt(10000)}}}
	handler := NewBudgetHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/budgets", handler.GetAll).Methods("GET")
	router.HandleFunc("/api/budgets", handler.ReplaceAll).Methods("PUT")
	return router, service
}

func TestBudgetHandler_GetAll(t *testing.T) {
	router, _ := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/api/budgets", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"category":"Groceries","limit":"10000"}]`, rr.Body.String())
}

func TestBudgetHandler_ReplaceAll(t *testing.T) {
	t.Run("should replace the list", func(t *testing.T) {
		router, service := setup(t)
		body := `[{"category":"Rent","limit":"15000"},{"category":"Health","limit":2500.5}]`
		req := httptest.NewRequest(http.MethodPut, "/api/budgets", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, service.budgets, 2)
		assert.Equal(t, transaction.Rent, service.budgets[0].Category)
		assert.Equal(t, "2500.5", service.budgets[1].Limit.String())
		var dto []BudgetDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Len(t, dto, 2)
	})

	t.Run("should return 400 on validation error", func(t *testing.T) {
		router, service := setup(t)
		body := `[{"category":"Rent","limit":"1"},{"category":"Rent","limit":"2"}]`
		req := httptest.NewRequest(http.MethodPut, "/api/budgets", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "duplicate budget")
		assert.Len(t, service.budgets, 1)
	})

	t.Run("should return 400 on malformed body", func(t *testing.T) {
		router, _ := setup(t)
		req := httptest.NewRequest(http.MethodPut, "/api/budgets", strings.NewReader(`{"category":"Rent"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should return 500 on unexpected error", func(t *testing.T) {
		router, service := setup(t)
		service.failErr = errors.New("boom")
		req := httptest.NewRequest(http.MethodPut, "/api/budgets", strings.NewReader(`[]`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
