package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	firstHour    = 7
	lastHour     = 20
	slotDuration = 30
)

// SlotsPerDay is the number of rows in the time axis.
const SlotsPerDay = (lastHour-firstHour)*2 + 1

var timeAxis = buildTimeAxis()

func buildTimeAxis() []string {
	axis := make([]string, 0, SlotsPerDay)
	for hour := firstHour; hour < lastHour; hour++ {
		axis = append(axis, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:30", hour))
	}
	return append(axis, fmt.Sprintf("%02d:00", lastHour))
}

// TimeAxis returns the start times of every grid row, 07:00 through 20:00.
// The caller receives its own copy.
func TimeAxis() []string {
	out := make([]string, len(timeAxis))
	copy(out, timeAxis)
	return out
}

// OnAxis reports whether startTime is one of the grid rows.
func OnAxis(startTime string) bool {
	for _, t := range timeAxis {
		if t == startTime {
			return true
		}
	}
	return false
}

// EndTime returns startTime plus thirty minutes in HH:MM form.
func EndTime(startTime string) (string, error) {
	minutes, err := parseClock(startTime)
	if err != nil {
		return "", err
	}
	end := minutes + slotDuration
	return fmt.Sprintf("%02d:%02d", end/60, end%60), nil
}

func parseClock(raw string) (int, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return hours*60 + mins, nil
}
