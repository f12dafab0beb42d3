package expense

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies an expense. The set is closed; anything outside it is
// rejected at the HTTP boundary.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryHousing       Category = "HOUSING"
	CategoryUtilities     Category = "UTILITIES"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryHealthcare    Category = "HEALTHCARE"
	CategoryShopping      Category = "SHOPPING"
	CategoryEducation     Category = "EDUCATION"
	CategoryTravel        Category = "TRAVEL"
	CategoryOther         Category = "OTHER"
)

var categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryHousing,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryShopping,
	CategoryEducation,
	CategoryTravel,
	CategoryOther,
}

// Categories returns every valid category.
func Categories() []Category {
	result := make([]Category, len(categories))
	copy(result, categories)
	return result
}

// ParseCategory converts the textual name into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Expense is the domain value for a single recorded expense. It is built
// once and never mutated: the handler constructs it without ID and
// timestamps, and the service returns a fresh stamped value.
type Expense struct {
	ID          uuid.UUID
	Description string
	DateTime    time.Time
	Amount      decimal.Decimal
	Currency    string
	Category    Category
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
