package model

// Income categories.
const (
	CategorySalary      = "Salary"
	CategoryFreelance   = "Freelance"
	CategoryInvestment  = "Investment"
	CategoryBusiness    = "Business"
	CategoryOtherIncome = "Other Income"
)

// Expense categories.
const (
	CategoryFood           = "Food"
	CategoryTransportation = "Transportation"
	CategoryEntertainment  = "Entertainment"
	CategoryShopping       = "Shopping"
	CategoryBills          = "Bills"
	CategoryHealthcare     = "Healthcare"
	CategoryOtherExpense   = "Other Expense"
)

// Categories returns the closed category vocabulary for a kind, in display
// order. Unknown kinds have no categories.
func Categories(kind Kind) []string {
	switch kind {
	case KindIncome:
		return []string{
			CategorySalary,
			CategoryFreelance,
			CategoryInvestment,
			CategoryBusiness,
			CategoryOtherIncome,
		}
	case KindExpense:
		return []string{
			CategoryFood,
			CategoryTransportation,
			CategoryEntertainment,
			CategoryShopping,
			CategoryBills,
			CategoryHealthcare,
			CategoryOtherExpense,
		}
	default:
		return nil
	}
}

// AllCategories returns income categories followed by expense categories.
func AllCategories() []string {
	return append(Categories(KindIncome), Categories(KindExpense)...)
}

// ValidCategory reports whether category belongs to kind's vocabulary.
func ValidCategory(kind Kind, category string) bool {
	for _, c := range Categories(kind) {
		if c == category {
			return true
		}
	}
	return false
}

// KindOfCategory returns the kind whose vocabulary contains category.
func KindOfCategory(category string) (Kind, bool) {
	for _, k := range []Kind{KindIncome, KindExpense} {
		if ValidCategory(k, category) {
			return k, true
		}
	}
	return "", false
}
