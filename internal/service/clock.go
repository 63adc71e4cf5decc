package service

import "time"

// dateLayout is the ISO-8601 day format used everywhere in storage.
const dateLayout = "2006-01-02"

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func dayString(t time.Time) string {
	return t.Format(dateLayout)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
