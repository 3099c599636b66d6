package stats

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type DashboardRenderer interface {
	RenderDashboard(dashboard Dashboard) (string, error)
}

type CsvDashboardRenderer struct {
}

func NewCsvDashboardRenderer() *CsvDashboardRenderer {
	return &CsvDashboardRenderer{}
}

// RenderDashboard writes the summary, monthly and per-category sections one after another.
// Each section starts with its own header row.
func (r *CsvDashboardRenderer) RenderDashboard(dashboard Dashboard) (string, error) {
	summary := dashboard.Summary
	data := [][]string{
		{"Metric", "Amount"},
		{"Total income", amountToString(summary.TotalIncome)},
		{"Total expenses", amountToString(summary.TotalExpenses)},
		{"Total budget", amountToString(summary.TotalBudget)},
		{"Remaining budget", amountToString(summary.RemainingBudget)},
		{"Savings", amountToString(summary.Savings)},
		{"Month", "Expenses"},
	}
	for _, month := range dashboard.Monthly {
		data = append(data, []string{month.Label, amountToString(month.Total)})
	}
	data = append(data, []string{"Category", "Expenses", "Share"})
	for _, category := range dashboard.ByCategory {
		data = append(data, []string{string(category.Category), amountToString(category.Total), category.Share.StringFixed(2)})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func amountToString(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
