// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/theirongolddev/messbook/internal/model"
)

// Currency is appended to every formatted amount.
const Currency = "BDT"

// FormatMoney formats an amount with thousands separators and two decimals.
// e.g., 1234.5 -> "1,234.50 BDT"
func FormatMoney(v float64) string {
	return FormatAmount(v) + " " + Currency
}

// FormatAmount is FormatMoney without the currency suffix.
func FormatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// FormatTaka formats a per-meal value the way plan ranges are written.
// e.g., 45.333 -> "৳45.33"
func FormatTaka(v float64) string {
	return "৳" + humanize.FormatFloat("#,###.##", v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatID renders a record id for tables and prompts.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// FormatAgo describes how long ago a notice was posted relative to now.
// Unparsable stamps are returned as written.
func FormatAgo(n model.Notice, now time.Time) string {
	t, err := time.ParseInLocation(model.DateLayout+" 15:04:05", n.Date+" "+n.Time, now.Location())
	if err != nil {
		return n.Date + " " + n.Time
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatMeals formats a breakfast/lunch/dinner triple.
// e.g., 1/1/0
func FormatMeals(mc model.MealCount) string {
	return fmt.Sprintf("%d/%d/%d", mc.Breakfast, mc.Lunch, mc.Dinner)
}

// FormatMemberID renders a nullable member id.
func FormatMemberID(id *int64) string {
	if id == nil {
		return "-"
	}
	return FormatID(*id)
}
