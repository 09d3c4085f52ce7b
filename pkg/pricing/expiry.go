package pricing

import "time"

// TradingDaysPerYear converts business days to years.
const TradingDaysPerYear = 252

// IsThirdFriday uses the option-expiry convention: a Friday between the 15th and the 21st.
func IsThirdFriday(date time.Time) bool {
	return date.Weekday() == time.Friday && date.Day() >= 15 && date.Day() <= 21
}

// MonthExpiry is the third Friday of the month.
func MonthExpiry(year int, month time.Month) time.Time {
	day := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	for !IsThirdFriday(day) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// NextExpiry is the first monthly expiry strictly after date.
func NextExpiry(date time.Time) time.Time {
	date = truncateDay(date)
	expiry := MonthExpiry(date.Year(), date.Month())
	if expiry.After(date) {
		return expiry
	}
	next := time.Date(date.Year(), date.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return MonthExpiry(next.Year(), next.Month())
}

// BusinessDaysToExpiry counts weekdays from date through the next expiry, both inclusive.
func BusinessDaysToExpiry(date time.Time) int {
	date = truncateDay(date)
	expiry := NextExpiry(date)
	days := 0
	for d := date; !d.After(expiry); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			days++
		}
	}
	return days
}

// YearsToExpiry is the business-day time to the next monthly expiry.
func YearsToExpiry(date time.Time) float64 {
	return float64(BusinessDaysToExpiry(date)) / TradingDaysPerYear
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
