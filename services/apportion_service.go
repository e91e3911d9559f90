package services

import (
	"math"
	"time"
)

// EngineerShare is one gang member's percentage share of logged work.
type EngineerShare struct {
	EngineerID uint
	Share      float64
}

// EngineerQuantity is the slice of a logged quantity apportioned to one
// engineer.
type EngineerQuantity struct {
	EngineerID uint    `json:"engineer_id"`
	Quantity   float64 `json:"quantity"`
}

// EntryLine is a (quantity, rate) pair for totalling.
type EntryLine struct {
	Quantity float64
	Rate     float64
}

// Round2 rounds to two decimal places, half away from zero. Apportioned
// quantities are rounded exactly once, here; totals stay full precision
// until display.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Apportion splits quantity across engineers proportionally to their share
// percentage. Each slice is computed independently as
// Round2(quantity*share/100); shares are not required to sum to 100, so the
// slices are not guaranteed to reconcile to the input quantity. Engineers
// with a non-positive share are left out entirely. Order follows the input.
func Apportion(quantity float64, shares []EngineerShare) []EngineerQuantity {
	var out []EngineerQuantity
	for _, s := range shares {
		if s.Share <= 0 {
			continue
		}
		out = append(out, EngineerQuantity{
			EngineerID: s.EngineerID,
			Quantity:   Round2(quantity * s.Share / 100),
		})
	}
	return out
}

// ProductTotal is the monetary total for one product line.
func ProductTotal(quantity, rate float64) float64 {
	return quantity * rate
}

// DayTotal sums the product totals logged for one day.
func DayTotal(lines []EntryLine) float64 {
	var total float64
	for _, l := range lines {
		total += ProductTotal(l.Quantity, l.Rate)
	}
	return total
}

// WeekTotal sums day totals across a week.
func WeekTotal(dayTotals []float64) float64 {
	var total float64
	for _, d := range dayTotals {
		total += d
	}
	return total
}

// EngineerTotal is the payout preview for one engineer: their share of the
// week's grand total. This is deliberately share-of-grand-total rather than
// a sum of that engineer's apportioned entries; the persisted entries remain
// authoritative for billing.
func EngineerTotal(share, weekTotal float64) float64 {
	return weekTotal * share / 100
}

// MarginPercent is the slice of the cass rate kept after paying the engineer
// rate, as a whole percentage. A non-positive cass rate yields zero rather
// than a division error.
func MarginPercent(cassRate, engineerRate float64) float64 {
	if cassRate <= 0 {
		return 0
	}
	return math.Round((cassRate - engineerRate) / cassRate * 100)
}

const dateLayout = "2006-01-02"

// MondayOf returns the Monday of the week containing date, as YYYY-MM-DD.
func MondayOf(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", err
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(dateLayout), nil
}

// WeekDays returns the 7 calendar dates beginning at weekStart.
func WeekDays(weekStart string) ([]string, error) {
	t, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return nil, err
	}
	days := make([]string, 7)
	for i := 0; i < 7; i++ {
		days[i] = t.AddDate(0, 0, i).Format(dateLayout)
	}
	return days, nil
}
