package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const DaysInWeek = 7

var weekdayNames = [DaysInWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Weekday returns the day index with Monday as 0 and Sunday as 6.
func Weekday(day time.Time) int {
	return (int(day.Weekday()) + DaysInWeek - 1) % DaysInWeek
}

// WeekdayName returns the display name of a Monday-based day index, or "" when out of range.
func WeekdayName(day int) string {
	if day < 0 || day >= DaysInWeek {
		return ""
	}

	return weekdayNames[day]
}

// Nights counts the nights between two calendar dates. Non-positive ranges have none.
func Nights(checkIn, checkOut time.Time) int {
	in := dateOnly(checkIn)
	out := dateOnly(checkOut)

	if !out.After(in) {
		return 0
	}

	return int(out.Sub(in).Hours()/24 + 0.5)
}

// Table holds the weekday rates of one room type.
type Table map[int]decimal.Decimal

func NewTable(prices []Price) Table {
	table := make(Table, len(prices))
	for _, p := range prices {
		table[p.DayOfWeek] = p.Price
	}

	return table
}

// TotalPrice sums the nightly rate of every night in [checkIn, checkOut). A night whose weekday
// has no entry in the table is charged the flat rate.
func TotalPrice(table Table, flatRate decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	total := decimal.Zero

	day := dateOnly(checkIn)
	end := dateOnly(checkOut)

	for day.Before(end) {
		rate, ok := table[Weekday(day)]
		if !ok {
			rate = flatRate
		}

		total = total.Add(rate)
		day = day.AddDate(0, 0, 1)
	}

	return total.Round(2)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
