package stats

import (
	"net/http"
	"time"

	"github.com/klokku/pennywise/internal/rest"
	"github.com/klokku/pennywise/internal/utils"
	"github.com/klokku/pennywise/pkg/budget"
	"github.com/klokku/pennywise/pkg/currency"
	"github.com/klokku/pennywise/pkg/transaction"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// Source provides the current state the aggregates are computed from.
type Source interface {
	Transactions() []transaction.Transaction
	Budgets() []budget.Budget
	Currency() currency.Currency
}

type SummaryDTO struct {
	TotalIncome     decimal.Decimal   `json:"totalIncome"`
	TotalExpenses   decimal.Decimal   `json:"totalExpenses"`
	TotalBudget     decimal.Decimal   `json:"totalBudget"`
	RemainingBudget decimal.Decimal   `json:"remainingBudget"`
	Savings         decimal.Decimal   `json:"savings"`
	Formatted       map[string]string `json:"formatted"`
}

type MonthlyTotalDTO struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

type CategoryTotalDTO struct {
	Category transaction.Category `json:"category"`
	Total    decimal.Decimal      `json:"total"`
	Share    decimal.Decimal      `json:"share"`
}

type DashboardDTO struct {
	From       *time.Time                `json:"from,omitempty"`
	To         *time.Time                `json:"to,omitempty"`
	Currency   currency.Currency         `json:"currency"`
	Summary    SummaryDTO                `json:"summary"`
	Monthly    []MonthlyTotalDTO         `json:"monthly"`
	ByCategory []CategoryTotalDTO        `json:"byCategory"`
	Today      []transaction.Transaction `json:"today"`
	Lifetime   LifetimeDTO               `json:"lifetime"`
}

type LifetimeDTO struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalSavings  decimal.Decimal `json:"totalSavings"`
}

type MonthlyExpensesDTO struct {
	Category transaction.Category `json:"category"`
	Year     int                  `json:"year"`
	Month    int                  `json:"month"`
	Total    decimal.Decimal      `json:"total"`
}

type BudgetProgressDTO struct {
	Category  transaction.Category `json:"category"`
	Limit     decimal.Decimal      `json:"limit"`
	Spent     decimal.Decimal      `json:"spent"`
	Remaining decimal.Decimal      `json:"remaining"`
	Percent   decimal.Decimal      `json:"percent"`
	Level     budget.Level         `json:"level"`
}

type StatsHandler struct {
	source   Source
	renderer DashboardRenderer
	clock    utils.Clock
	locale   language.Tag
}

func NewStatsHandler(source Source, renderer DashboardRenderer, clock utils.Clock, locale language.Tag) *StatsHandler {
	return &StatsHandler{source: source, renderer: renderer, clock: clock, locale: locale}
}

// GetDashboard godoc
// @Summary Dashboard aggregates
// @Description Totals, monthly and per-category expenses, optionally limited to a date range
// @Tags Stats
// @Produce json
// @Produce text/csv
// @Param from query string false "Range start (YYYY-MM-DD or RFC3339)"
// @Param to query string false "Range end, inclusive of the whole day"
// @Success 200 {object} DashboardDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/stats/dashboard [get]
func (h *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	loc := h.clock.Location()
	from, err := rest.ParseDate(r.URL.Query().Get("from"), loc)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from date", "from must be YYYY-MM-DD or RFC3339")
		return
	}
	to, err := rest.ParseDate(r.URL.Query().Get("to"), loc)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid to date", "to must be YYYY-MM-DD or RFC3339")
		return
	}

	transactions := h.source.Transactions()
	dashboard := BuildDashboard(transactions, h.source.Budgets(), DateRange{Start: from, End: to}, h.clock.Now())

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderDashboard(dashboard)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, h.toDashboardDTO(dashboard, LifetimeStats(transactions)))
}

// GetMonthlyExpenses godoc
// @Summary Expenses of one category in a month
// @Tags Stats
// @Produce json
// @Param date query string false "Any day of the month, defaults to today"
// @Param category query string true "Transaction category"
// @Success 200 {object} MonthlyExpensesDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/stats/expenses [get]
func (h *StatsHandler) GetMonthlyExpenses(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.referenceDate(w, r)
	if !ok {
		return
	}
	category, err := transaction.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid category", err.Error())
		return
	}

	total := ExpensesForMonth(h.source.Transactions(), ref, category)
	rest.WriteJSON(w, http.StatusOK, MonthlyExpensesDTO{
		Category: category,
		Year:     ref.Year(),
		Month:    int(ref.Month()),
		Total:    total,
	})
}

// GetBudgetProgress godoc
// @Summary Budget usage for a month
// @Tags Stats
// @Produce json
// @Param date query string false "Any day of the month, defaults to today"
// @Success 200 {array} BudgetProgressDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budgets/progress [get]
func (h *StatsHandler) GetBudgetProgress(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.referenceDate(w, r)
	if !ok {
		return
	}
	progress := BudgetProgress(h.source.Budgets(), h.source.Transactions(), ref)
	result := make([]BudgetProgressDTO, 0, len(progress))
	for _, p := range progress {
		result = append(result, BudgetProgressDTO{
			Category:  p.Budget.Category,
			Limit:     p.Budget.Limit,
			Spent:     p.Spent,
			Remaining: p.Remaining,
			Percent:   p.Percent,
			Level:     p.Level,
		})
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

func (h *StatsHandler) referenceDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	ref, err := rest.ParseDate(r.URL.Query().Get("date"), h.clock.Location())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", "date must be YYYY-MM-DD or RFC3339")
		return time.Time{}, false
	}
	if ref.IsZero() {
		ref = h.clock.Now()
	}
	return ref, true
}

func (h *StatsHandler) toDashboardDTO(d Dashboard, lifetime Lifetime) DashboardDTO {
	c := h.source.Currency()
	format := func(amount decimal.Decimal) string {
		return currency.Format(amount, c, h.locale)
	}

	dto := DashboardDTO{
		Currency: c,
		Summary: SummaryDTO{
			TotalIncome:     d.Summary.TotalIncome,
			TotalExpenses:   d.Summary.TotalExpenses,
			TotalBudget:     d.Summary.TotalBudget,
			RemainingBudget: d.Summary.RemainingBudget,
			Savings:         d.Summary.Savings,
			Formatted: map[string]string{
				"totalIncome":     format(d.Summary.TotalIncome),
				"totalExpenses":   format(d.Summary.TotalExpenses),
				"totalBudget":     format(d.Summary.TotalBudget),
				"remainingBudget": format(d.Summary.RemainingBudget),
				"savings":         format(d.Summary.Savings),
			},
		},
		Monthly:    make([]MonthlyTotalDTO, 0, len(d.Monthly)),
		ByCategory: make([]CategoryTotalDTO, 0, len(d.ByCategory)),
		Today:      d.Today,
		Lifetime: LifetimeDTO{
			TotalIncome:   lifetime.TotalIncome,
			TotalExpenses: lifetime.TotalExpenses,
			TotalSavings:  lifetime.TotalSavings,
		},
	}
	if dto.Today == nil {
		dto.Today = []transaction.Transaction{}
	}
	if d.Range.IsSet() {
		from, to := d.Range.Start, d.Range.End
		dto.From, dto.To = &from, &to
	}
	for _, m := range d.Monthly {
		dto.Monthly = append(dto.Monthly, MonthlyTotalDTO{Year: m.Year, Month: int(m.Month), Label: m.Label, Total: m.Total})
	}
	for _, ct := range d.ByCategory {
		dto.ByCategory = append(dto.ByCategory, CategoryTotalDTO{Category: ct.Category, Total: ct.Total, Share: ct.Share})
	}
	return dto
}
