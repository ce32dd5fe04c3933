package models

import "time"

// dateLayouts are the wire formats accepted for profile DOB and article
// dates, most common first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"02.01.2006",
	"January 2, 2006",
	"2 January 2006",
}

// ParseDate parses a date string in one of the accepted layouts. The second
// return is false when no layout matches.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AgeAt computes whole years between birth date and a reference date.
func AgeAt(birth, ref time.Time) int {
	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	return age
}
