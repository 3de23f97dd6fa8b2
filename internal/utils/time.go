package utils

import (
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

// Today returns the current calendar date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(dateFormat)
}

// ValidClockTime reports whether s is a valid 24-hour HH:MM clock time.
func ValidClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// TimeToMinutes converts an HH:MM time string to minutes since midnight.
func TimeToMinutes(timeStr string) int {
	t, _ := time.Parse("15:04", timeStr)
	return t.Hour()*60 + t.Minute()
}

// SleepDuration computes the hours slept between bedTime and wakeTime, both
// HH:MM clock times. A wake time earlier than the bed time means the sleep
// crossed midnight, so a full day is added before taking the difference.
func SleepDuration(bedTime, wakeTime string) (float64, error) {
	if !ValidClockTime(bedTime) {
		return 0, fmt.Errorf("invalid bed time %q, expected HH:MM", bedTime)
	}
	if !ValidClockTime(wakeTime) {
		return 0, fmt.Errorf("invalid wake time %q, expected HH:MM", wakeTime)
	}

	bed := TimeToMinutes(bedTime)
	wake := TimeToMinutes(wakeTime)
	if wake < bed {
		wake += 24 * 60
	}
	return float64(wake-bed) / 60.0, nil
}
