package transaction

import (
	"strings"
	"time"

	"github.com/klokku/pennywise/internal/validation"
	"github.com/shopspring/decimal"
)

type Type string

const (
	Income  Type = "Income"
	Expense Type = "Expense"
)

type Category string

const (
	Groceries     Category = "Groceries"
	Rent          Category = "Rent"
	Utilities     Category = "Utilities"
	Transport     Category = "Transport"
	Salary        Category = "Salary"
	Freelance     Category = "Freelance"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Shopping      Category = "Shopping"
	Other         Category = "Other"
)

var categories = []Category{
	Groceries, Rent, Utilities, Transport, Salary, Freelance, Entertainment, Health, Shopping, Other,
}

var (
	ErrInvalidType     = validation.New("transaction type must be Income or Expense")
	ErrInvalidCategory = validation.New("unknown transaction category")
	ErrNegativeAmount  = validation.New("amount must not be negative")
	ErrMissingDate     = validation.New("transaction date is required")
)

// Transaction is a single recorded money movement. ID is assigned by the state store on insertion.
type Transaction struct {
	ID          string          `json:"id"`
	Type        Type            `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// Input is a transaction as submitted by a caller, before it has an ID.
type Input struct {
	Type        Type
	Amount      decimal.Decimal
	Category    Category
	Date        time.Time
	Description string
}

// WithID builds the stored transaction for this input.
func (in Input) WithID(id string) Transaction {
	return Transaction{
		ID:          id,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        in.Date,
		Description: in.Description,
	}
}

func (in Input) Validate() error {
	return validateFields(in.Type, in.Amount, in.Category, in.Date)
}

func (t Transaction) Validate() error {
	return validateFields(t.Type, t.Amount, t.Category, t.Date)
}

func (t Transaction) IsExpense() bool {
	return t.Type == Expense
}

func (t Transaction) IsIncome() bool {
	return t.Type == Income
}

func validateFields(typ Type, amount decimal.Decimal, category Category, date time.Time) error {
	if !typ.Valid() {
		return ErrInvalidType
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !category.Valid() {
		return ErrInvalidCategory
	}
	if date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Bucket maps values outside the closed set (e.g. read from old storage) onto Other.
func (c Category) Bucket() Category {
	if c.Valid() {
		return c
	}
	return Other
}

// Categories returns all categories in their declaration order.
func Categories() []Category {
	result := make([]Category, len(categories))
	copy(result, categories)
	return result
}

// ParseType accepts the type name case-insensitively.
func ParseType(s string) (Type, error) {
	for _, t := range []Type{Income, Expense} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", ErrInvalidType
}

// ParseCategory accepts the category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}
