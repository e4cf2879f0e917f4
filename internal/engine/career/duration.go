package career

import (
	"fmt"
	"strings"
)

// FormatDuration renders years and months as "2 years 3 months",
// omitting zero parts. A zero duration renders as "< 1 month".
func FormatDuration(years, months int) string {
	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
	}
	if len(parts) == 0 {
		return "< 1 month"
	}
	return strings.Join(parts, " ")
}

// FormatMonths is FormatDuration for a total month count.
func FormatMonths(total int) string {
	if total < 0 {
		total = 0
	}
	return FormatDuration(total/12, total%12)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatPeriod renders a year/month pair as "2021-03". A nil year renders
// as "Present".
func FormatPeriod(year *int, month *int) string {
	if year == nil {
		return "Present"
	}
	m := DefaultEndMonth
	if month != nil {
		m = *month
	}
	return fmt.Sprintf("%04d-%02d", *year, m)
}

// FormatStart renders a start year/month as "2021-03".
func FormatStart(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// FormatIndex renders a month index as "2021-03".
func FormatIndex(idx int) string {
	return FormatStart((idx-1)/12, (idx-1)%12+1)
}
