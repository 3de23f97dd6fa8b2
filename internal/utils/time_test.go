package utils_test

import (
	"testing"

	"github.com/nutritrack/nutritrack/internal/utils"
)

func TestSleepDurationCrossesMidnight(t *testing.T) {
	t.Parallel()

	duration, err := utils.SleepDuration("23:00", "07:00")
	if err != nil {
		t.Fatalf("sleep duration: %v", err)
	}
	if duration != 8.0 {
		t.Fatalf("expected 8.0 hours, got %v", duration)
	}
}

func TestSleepDurationSameDay(t *testing.T) {
	t.Parallel()

	duration, err := utils.SleepDuration("07:00", "23:00")
	if err != nil {
		t.Fatalf("sleep duration: %v", err)
	}
	if duration != 16.0 {
		t.Fatalf("expected 16.0 hours, got %v", duration)
	}
}

func TestSleepDurationFractionalHours(t *testing.T) {
	t.Parallel()

	duration, err := utils.SleepDuration("23:30", "06:15")
	if err != nil {
		t.Fatalf("sleep duration: %v", err)
	}
	if duration != 6.75 {
		t.Fatalf("expected 6.75 hours, got %v", duration)
	}
}

func TestSleepDurationRejectsInvalidTimes(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ bed, wake string }{
		{"25:00", "07:00"},
		{"23:00", "7am"},
		{"", "07:00"},
		{"23:00", ""},
	} {
		if _, err := utils.SleepDuration(tc.bed, tc.wake); err == nil {
			t.Fatalf("expected error for %q -> %q", tc.bed, tc.wake)
		}
	}
}

func TestValidClockTime(t *testing.T) {
	t.Parallel()

	valid := []string{"00:00", "23:59", "07:30"}
	for _, s := range valid {
		if !utils.ValidClockTime(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}

	invalid := []string{"24:00", "7:30", "0730", "12:60", "noon"}
	for _, s := range invalid {
		if utils.ValidClockTime(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestTimeToMinutes(t *testing.T) {
	t.Parallel()

	if got := utils.TimeToMinutes("00:00"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := utils.TimeToMinutes("08:30"); got != 510 {
		t.Fatalf("expected 510, got %d", got)
	}
}
