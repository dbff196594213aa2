package model

// Currencies accepted in the expense flow. The income flow does not ask for
// a currency and uses the configured default instead.
var Currencies = []string{"TJS", "USD", "EUR", "RUB"}

var (
	ExpenseCategories = []string{"Еда", "Транспорт", "Коммуналка"}
	IncomeCategories  = []string{"Зарплата", "Фриланс"}
)

func IsCurrency(s string) bool        { return Contains(Currencies, s) }
func IsExpenseCategory(s string) bool { return Contains(ExpenseCategories, s) }
func IsIncomeCategory(s string) bool  { return Contains(IncomeCategories, s) }

// Contains reports set membership; the option sets are tiny so a linear
// scan is fine.
func Contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
