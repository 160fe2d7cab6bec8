package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC when the zone database is
// missing.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// DayBounds returns [00:00, next 00:00) of date in loc, normalized to UTC.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day.UTC(), day.AddDate(0, 0, 1).UTC(), nil
}

// RangeBounds is DayBounds over an inclusive date range.
func RangeBounds(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	start, _, err := DayBounds(from, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	_, end, err := DayBounds(to, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
