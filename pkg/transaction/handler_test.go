package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/pennywise/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	transactions []Transaction
	nextID       string
}

func (s *stubService) Transactions() []Transaction { return slices.Clone(s.transactions) }

func (s *stubService) AddTransaction(_ context.Context, in Input) (Transaction, error) {
	if err := in.Validate(); err != nil {
		return Transaction{}, err
	}
	t := in.WithID(s.nextID)
	s.transactions = append([]Transaction{t}, s.transactions...)
	return t, nil
}

func (s *stubService) UpdateTransaction(_ context.Context, t Transaction) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			s.transactions[i] = t
			return true, nil
		}
	}
	return false, nil
}

func (s *stubService) DeleteTransaction(_ context.Context, id string) bool {
	before := len(s.transactions)
	s.transactions = slices.DeleteFunc(s.transactions, func(t Transaction) bool { return t.ID == id })
	return len(s.transactions) != before
}

func setupHandler(t *testing.T) (*mux.Router, *stubService) {
	t.Helper()
	service := &stubService{transactions: sample(), nextID: "new"}
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)}
	handler := NewHandler(service, clock)
	router := mux.NewRouter()
	router.HandleFunc("/api/transactions", handler.List).Methods("GET")
	router.HandleFunc("/api/transactions", handler.Create).Methods("POST")
	router.HandleFunc("/api/transactions/{id}", handler.Update).Methods("PUT")
	router.HandleFunc("/api/transactions/{id}", handler.Delete).Methods("DELETE")
	return router, service
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []string {
	t.Helper()
	var dto []TransactionDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	result := make([]string, 0, len(dto))
	for _, d := range dto {
		result = append(result, d.ID)
	}
	return result
}

func TestHandler_List(t *testing.T) {
	router, _ := setupHandler(t)
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"insertion order by default", "", []string{"3", "1", "2", "4"}},
		{"sorted by amount descending", "?sort=amount&direction=desc", []string{"1", "2", "3", "4"}},
		{"restricted to a range", "?from=2025-03-02&to=2025-03-02", []string{"2", "4"}},
		{"range ignored when a bound is missing", "?from=2025-03-02", []string{"3", "1", "2", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/transactions"+tt.query, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.want, decodeList(t, rr))
		})
	}

	t.Run("rejects unknown sort key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/transactions?sort=colour", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandler_Create(t *testing.T) {
	t.Run("should add and return the transaction", func(t *testing.T) {
		router, service := setupHandler(t)
		body := `{"type":"Expense","amount":"8000","category":"Groceries","date":"2025-03-06","description":"Bulk shopping"}`
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var dto TransactionDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Equal(t, "new", dto.ID)
		assert.Equal(t, "2025-03-06T00:00:00Z", dto.Date)
		assert.Equal(t, "new", service.transactions[0].ID)
		assert.Equal(t, "8000", service.transactions[0].Amount.String())
	})

	t.Run("should reject invalid transaction", func(t *testing.T) {
		router, service := setupHandler(t)
		body := `{"type":"Expense","amount":"-1","category":"Groceries","date":"2025-03-06"}`
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "amount must not be negative")
		assert.Len(t, service.transactions, 4)
	})

	t.Run("should reject malformed date", func(t *testing.T) {
		router, _ := setupHandler(t)
		body := `{"type":"Income","amount":"1","category":"Salary","date":"06/03/2025"}`
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	t.Run("should replace existing", func(t *testing.T) {
		router, service := setupHandler(t)
		body := `{"type":"Expense","amount":"16000","category":"Rent","date":"2025-03-02","description":"Rent raised"}`
		req := httptest.NewRequest(http.MethodPut, "/api/transactions/2", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "Rent raised", service.transactions[2].Description)
	})

	t.Run("should answer 204 for unknown id and change nothing", func(t *testing.T) {
		router, service := setupHandler(t)
		body := `{"type":"Expense","amount":"1","category":"Rent","date":"2025-03-02"}`
		req := httptest.NewRequest(http.MethodPut, "/api/transactions/missing", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, sample(), service.transactions)
	})

	t.Run("should reject mismatching body id", func(t *testing.T) {
		router, _ := setupHandler(t)
		body := `{"id":"3","type":"Expense","amount":"1","category":"Rent","date":"2025-03-02"}`
		req := httptest.NewRequest(http.MethodPut, "/api/transactions/2", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	router, service := setupHandler(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/transactions/2", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	}
	assert.Equal(t, []string{"3", "1", "4"}, ids(service.transactions))
}
