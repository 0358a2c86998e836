package AbstractFunctions

import (
	"fmt"
	"time"
)

// GetTodayInTimezone returns today's calendar date (YYYY-MM-DD) in the given
// IANA timezone.
func GetTodayInTimezone(tz string) (string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", fmt.Errorf("error loading timezone %s: %v", tz, err)
	}
	return time.Now().In(loc).Format("2006-01-02"), nil
}

// GetCurrentTimeInTimezone returns the current wall-clock time (HH:MM) in
// the given IANA timezone.
func GetCurrentTimeInTimezone(tz string) (string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", fmt.Errorf("error loading timezone %s: %v", tz, err)
	}
	return time.Now().In(loc).Format("15:04"), nil
}
