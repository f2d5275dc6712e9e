package domain

import "strings"

// Category is the closed set of transaction categories. Classifier output
// that does not match one of these values maps to CategoryOther.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategorySalary        Category = "salary"
	CategoryInvestment    Category = "investment"
	CategoryTransfer      Category = "transfer"
	CategoryEMI           Category = "emi"
	CategorySubscription  Category = "subscription"
	CategoryOther         Category = "other"
)

// AllCategories lists every valid category, in a stable order.
func AllCategories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryHealth,
		CategoryEducation,
		CategorySalary,
		CategoryInvestment,
		CategoryTransfer,
		CategoryEMI,
		CategorySubscription,
		CategoryOther,
	}
}

// IsValid reports whether c is one of the enumerated categories.
func (c Category) IsValid() bool {
	for _, v := range AllCategories() {
		if c == v {
			return true
		}
	}
	return false
}

// ParseCategory normalizes s into a Category. Unrecognized input maps to
// CategoryOther so classification can never fail.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c
	}
	return CategoryOther
}
