package career

import "time"

// DefaultEndMonth is assumed when only the end year of a period is known.
const DefaultEndMonth = 12

// MonthIndex encodes (year, month) as a single comparable integer.
func MonthIndex(year, month int) int {
	return year*12 + month
}

// NowIndex returns the month index of t.
func NowIndex(t time.Time) int {
	return MonthIndex(t.Year(), int(t.Month()))
}

// StartIndex returns the month index of the experience start.
func (e Experience) StartIndex() int {
	return MonthIndex(e.StartYear, e.StartMonth)
}

// EndMonthOrDefault returns EndMonth, or DefaultEndMonth when it is absent.
func (e Experience) EndMonthOrDefault() int {
	if e.EndMonth == nil {
		return DefaultEndMonth
	}
	return *e.EndMonth
}

// EndIndex returns the month index of the experience end and false when
// the experience is ongoing.
func (e Experience) EndIndex() (int, bool) {
	if e.EndYear == nil {
		return 0, false
	}
	return MonthIndex(*e.EndYear, e.EndMonthOrDefault()), true
}

// EndIndexAt is EndIndex with ongoing periods counted up to now.
func (e Experience) EndIndexAt(now time.Time) int {
	if end, ok := e.EndIndex(); ok {
		return end
	}
	return NowIndex(now)
}

// StartIndex returns the month index of the span start.
func (g GroupedExperience) StartIndex() int {
	return MonthIndex(g.TotalStartYear, g.TotalStartMonth)
}

// EndIndexAt returns the month index of the span end, counting an open
// span up to now. A missing end month defaults to DefaultEndMonth.
func (g GroupedExperience) EndIndexAt(now time.Time) int {
	if g.TotalEndYear == nil {
		return NowIndex(now)
	}
	m := DefaultEndMonth
	if g.TotalEndMonth != nil {
		m = *g.TotalEndMonth
	}
	return MonthIndex(*g.TotalEndYear, m)
}
