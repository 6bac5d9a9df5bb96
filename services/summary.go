package services

import (
	"github.com/Ryanmedeirosp/Diet-Daily-app/database"
	"github.com/Ryanmedeirosp/Diet-Daily-app/models"

	"github.com/shopspring/decimal"
)

// SummarizeTransactions returns the net balance of a session's ledger.
// Amounts are sign-normalized at insert time (credit positive, debit
// negative), so the balance is a plain sum. An empty ledger yields zero,
// never null.
func SummarizeTransactions(token string) (decimal.Decimal, error) {
	rows, err := database.DB.Query(
		"SELECT amount FROM transactions WHERE session_token = ?",
		token,
	)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}

	return total, rows.Err()
}

// AnalyzeMeals walks the meal history in the order given, counting totals
// and the best run of consecutive on-diet meals. Callers hand in the list
// order, which is date descending, so the streak measures a most-recent-
// first run rather than a calendar-forward one. The slice is never
// re-sorted; reordering the input changes the result.
func AnalyzeMeals(meals []models.Meal) models.MealSummary {
	var summary models.MealSummary

	current := 0
	for _, meal := range meals {
		summary.Total++
		if meal.OnDiet {
			summary.OnDiet++
			current++
		} else {
			summary.OffDiet++
			current = 0
		}
		if current > summary.BestStreak {
			summary.BestStreak = current
		}
	}

	return summary
}
