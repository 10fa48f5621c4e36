// Package aggregation sums transaction amounts by category and by period.
// All functions are pure and treat an empty input as a zero total.
package aggregation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"painel/internal/models"
)

// Total sums the amounts of txs.
func Total(txs []models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// TotalByCategory sums the amounts of the transactions in category.
func TotalByCategory(txs []models.Transaction, category models.Category) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.Category == category {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// TotalsByCategory returns the total of every category, including the ones
// with no transactions.
func TotalsByCategory(txs []models.Transaction) map[models.Category]decimal.Decimal {
	totals := make(map[models.Category]decimal.Decimal, len(models.Categories()))
	for _, c := range models.Categories() {
		totals[c] = decimal.Zero
	}
	for _, tx := range txs {
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// MonthBounds returns the half-open interval [start, end) covering the
// given calendar month in loc. Every instant of the last day, up to its
// final nanosecond, falls inside.
func MonthBounds(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.Local
	}
	start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// DayBounds returns the half-open interval covering the calendar day of ref
// in ref's location.
func DayBounds(ref time.Time) (start, end time.Time) {
	y, m, d := ref.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	return start, start.AddDate(0, 0, 1)
}

// Between returns the transactions with start <= Date < end, newest first.
func Between(txs []models.Transaction, start, end time.Time) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, tx := range txs {
		if within(tx.Date, start, end) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// InMonth returns the transactions dated in the given month, newest first.
func InMonth(txs []models.Transaction, year int, month time.Month, loc *time.Location) []models.Transaction {
	start, end := MonthBounds(year, month, loc)
	return Between(txs, start, end)
}

// TotalInMonth sums the transactions dated in the given month of loc.
func TotalInMonth(txs []models.Transaction, year int, month time.Month, loc *time.Location) decimal.Decimal {
	start, end := MonthBounds(year, month, loc)
	return totalBetween(txs, start, end)
}

// Today returns the transactions dated on ref's calendar day, newest first.
func Today(txs []models.Transaction, ref time.Time) []models.Transaction {
	start, end := DayBounds(ref)
	return Between(txs, start, end)
}

// TotalToday sums the transactions dated on ref's calendar day.
func TotalToday(txs []models.Transaction, ref time.Time) decimal.Decimal {
	start, end := DayBounds(ref)
	return totalBetween(txs, start, end)
}

func totalBetween(txs []models.Transaction, start, end time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if within(tx.Date, start, end) {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
