package date

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrParsing = errors.New("error parsing date")

// Parse reads a due date typed by a user. Relative inputs are resolved
// against now, and the result is always midnight in now's location.
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	today := StartOfDay(now)
	switch s {
	case "today", "tod", "now":
		return today, nil
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), nil
	case "yesterday", "yday":
		return today.AddDate(0, 0, -1), nil
	}
	if wkd, err := parseWeekday(s); err == nil {
		return nextWeekday(today, wkd), nil
	}
	if days, err := parseDayOffset(s); err == nil {
		return today.AddDate(0, 0, days), nil
	}
	if day, err := parseDayOfMonth(s); err == nil {
		return nextDayOfMonth(today, day), nil
	}
	if t, err := parseAbsolute(s, today); err == nil {
		return t, nil
	}
	// "21st jan" -> "21 jan"
	if stripped := ordinal.ReplaceAllString(s, "$1"); stripped != s {
		if t, err := parseAbsolute(stripped, today); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrParsing, s)
}

var ordinal = regexp.MustCompile(`([0-9])(st|nd|rd|th)\b`)

func parseAnyTimeFormat(s string, formats []string) (time.Time, error) {
	for _, layout := range formats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("format not found")
}

var absoluteFormats = []string{
	"2006-01-02",
	"_2/01/06",
	"_2/01/2006",
	"_2 Jan 2006",
	"_2 January 2006",
	"Jan _2 2006",
	"January _2 2006",
}

// formats without a year, resolved to the next occurrence
var yearlessFormats = []string{
	"_2 Jan",
	"_2 January",
	"Jan _2",
	"January _2",
}

func parseAbsolute(s string, today time.Time) (time.Time, error) {
	if t, err := parseAnyTimeFormat(s, absoluteFormats); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, today.Location()), nil
	}
	t, err := parseAnyTimeFormat(s, yearlessFormats)
	if err != nil {
		return time.Time{}, err
	}
	next := time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = next.AddDate(1, 0, 0)
	}
	return next, nil
}

type multiplier struct {
	key   string
	value int
}

var multipliers = []multiplier{
	{"days", 1},
	{"weeks", 7},
	{"months", 30},
	{"years", 365},
}

// parseDayOffset reads relative offsets such as "in 3 days", "2w" or "1 day ago"
func parseDayOffset(s string) (int, error) {
	s = strings.TrimPrefix(s, "in")
	s = strings.TrimSpace(s)
	var (
		n        int
		negative bool
	)
	if len(s) >= 1 {
		if s[0] == '-' {
			negative = true
			s = s[1:]
		} else if s[0] == '+' {
			s = s[1:]
		}
	}
	// parse quantity
	{
		s1, n1, err := parseInt(s)
		if err != nil {
			return 0, err
		}
		n = n1
		s = strings.TrimSpace(s1)
	}

	multiplier := 1
	if len(s) > 0 {
		multiplier = 0
		endOfWord := len(s)
		for i, c := range s {
			if c == ' ' {
				endOfWord = i
				break
			}
		}
		for _, m := range multipliers {
			end := min(len(m.key), endOfWord)
			if m.key[:end] == s[:end] {
				multiplier = m.value
				s = s[endOfWord:]
				break
			}
		}
		if multiplier == 0 {
			return 0, errors.New("invalid suffix, expected 'days', 'months', 'weeks', or 'years'")
		}
		switch strings.TrimSpace(s) {
		case "":
		case "ago":
			negative = true
		default:
			return 0, errors.New("unexpected trailing text")
		}
	}

	if negative {
		n *= -1
	}
	return n * multiplier, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for i := time.Sunday; i <= time.Saturday; i++ {
		name := strings.ToLower(i.String())
		if s == name || s == name[:3] {
			return i, nil
		}
	}
	return 0, errors.New("invalid weekday")
}

// nextWeekday is strictly after today, asking for "mon" on a monday gives next week
func nextWeekday(today time.Time, w time.Weekday) time.Time {
	days := int(w - today.Weekday())
	if days <= 0 {
		days += 7
	}
	return today.AddDate(0, 0, days)
}

func parseDayOfMonth(s string) (int, error) {
	var (
		n   int
		err error
	)
	s, n, err = parseInt(s)
	if err != nil {
		return 0, errors.New("failed")
	}
	lastDigit := n % 10
	forceTh := (n%100 - lastDigit) == 10

	var valid bool
	switch {
	case n < 1 || n > 31:
	case lastDigit == 1 && !forceTh:
		valid = s == "st"
	case lastDigit == 2 && !forceTh:
		valid = s == "nd"
	case lastDigit == 3 && !forceTh:
		valid = s == "rd"
	default:
		valid = s == "th"
	}
	if !valid {
		return 0, errors.New("invalid postfix")
	}
	return n, nil
}

// nextDayOfMonth is the next nth of a month strictly after today
func nextDayOfMonth(today time.Time, nth int) time.Time {
	months := 0
	days := nth - today.Day()
	if days <= 0 {
		months = 1
	}
	return today.AddDate(0, months, days)
}

func parseInt(s string) (string, int, error) {
	if len(s) == 0 {
		return s, 0, errors.New("empty")
	}
	n := 0
	i := 0
	for {
		if i >= len(s) {
			break
		}
		n1, err := strconv.Atoi(s[:i+1])
		// first one can not fail
		if err != nil {
			if i == 0 {
				return s, 0, errors.New("failed to parse")
			}
			break
		}
		n = n1
		i++
	}
	return s[i:], n, nil
}
