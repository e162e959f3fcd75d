package services

import (
	"fmt"
	"time"
)

// Daily free-tier limits per metered feature.
const (
	AptitudeDailyLimit = 5
	ResumeDailyLimit   = 3
)

// QuotaExceededError reports a daily limit hit, carrying the numbers
// the API surfaces to the client.
type QuotaExceededError struct {
	Limit int
	Used  int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily limit reached (%d/%d)", e.Used, e.Limit)
}

// DayStart returns local midnight for the day containing t. Usage rows
// with used_at >= DayStart(now) count toward today; a row stamped
// exactly at midnight belongs to the new day.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
