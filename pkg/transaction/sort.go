package transaction

import (
	"slices"
	"strings"

	"github.com/klokku/pennywise/internal/validation"
)

type SortKey string

const (
	SortByID          SortKey = "id"
	SortByType        SortKey = "type"
	SortByAmount      SortKey = "amount"
	SortByCategory    SortKey = "category"
	SortByDate        SortKey = "date"
	SortByDescription SortKey = "description"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

var ErrInvalidSort = validation.New("sort key must be one of id, type, amount, category, date, description")
var ErrInvalidDirection = validation.New("direction must be asc or desc")

func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case SortByID, SortByType, SortByAmount, SortByCategory, SortByDate, SortByDescription:
		return key, nil
	}
	return "", ErrInvalidSort
}

// ParseDirection defaults to ascending for an empty value.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", ErrInvalidDirection
}

// Sort returns a sorted copy; the input slice is left untouched. Equal elements keep their relative order.
func Sort(transactions []Transaction, key SortKey, direction Direction) []Transaction {
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		c := compareBy(key, a, b)
		if direction == Descending {
			return -c
		}
		return c
	})
	return sorted
}

func compareBy(key SortKey, a, b Transaction) int {
	switch key {
	case SortByID:
		return strings.Compare(a.ID, b.ID)
	case SortByType:
		return strings.Compare(string(a.Type), string(b.Type))
	case SortByAmount:
		return a.Amount.Cmp(b.Amount)
	case SortByCategory:
		return strings.Compare(string(a.Category), string(b.Category))
	case SortByDate:
		return a.Date.Compare(b.Date)
	case SortByDescription:
		return strings.Compare(a.Description, b.Description)
	}
	return 0
}
