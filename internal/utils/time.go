package utils

import (
	"strconv"
	"strings"
	"time"
)

// UnixTimeToTime converts a Unix timestamp to a time.Time object
func UnixTimeToTime(unixTime int64) time.Time {
	return time.Unix(unixTime, 0)
}

// NormalizeTimestamp coerces the loosely-typed timestamp values stored in the
// document database into a single time.Time. Depending on which app wrote the
// document, the value may be a native store timestamp (decoded as time.Time),
// an RFC3339 string, a date-only string or a Unix epoch number. Unknown or
// missing values normalize to the zero time so callers can fall back to it
// when sorting.
func NormalizeTimestamp(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "01/02/2006"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case int64:
		return UnixTimeToTime(t)
	case float64:
		return UnixTimeToTime(int64(t))
	}
	return time.Time{}
}

// ParseReservationDate parses the reservation date string stored as
// "MM/DD/YYYY". Returns ok=false for anything it cannot parse.
func ParseReservationDate(s string) (year, month, day int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, false
	}
	day, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, false
	}
	year, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, false
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// ParseClock12 parses the reservation time-of-day string stored in 12-hour
// format with an AM/PM suffix, e.g. "5:44:01PM" or "12:30:00pm". The leading
// zero is optional and the meridiem marker is case-insensitive. Returns
// ok=false for anything it cannot parse.
func ParseClock12(s string) (hour, minute, second int, ok bool) {
	clock := strings.TrimSpace(s)
	upper := strings.ToUpper(clock)

	isPM := strings.HasSuffix(upper, "PM")
	isAM := strings.HasSuffix(upper, "AM")
	if !isPM && !isAM {
		return 0, 0, 0, false
	}

	clock = strings.TrimSpace(clock[:len(clock)-2])
	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, false
	}
	if len(parts) == 3 {
		second, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0, 0, 0, false
		}
	}

	if hour < 1 || hour > 12 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, 0, 0, false
	}

	// 12AM is midnight, 12PM is noon
	if isPM && hour != 12 {
		hour += 12
	}
	if isAM && hour == 12 {
		hour = 0
	}
	return hour, minute, second, true
}

// ReservationMoment combines the separately-stored date and hour strings of a
// reservation into one absolute instant in local time. Returns ok=false when
// either piece is unparseable.
func ReservationMoment(date, clock string) (time.Time, bool) {
	year, month, day, ok := ParseReservationDate(date)
	if !ok {
		return time.Time{}, false
	}
	hour, minute, second, ok := ParseClock12(clock)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), true
}
