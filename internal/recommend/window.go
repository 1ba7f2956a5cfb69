package recommend

import (
	"fmt"
	"strings"
	"time"
)

// DiscountWindow is a recurring weekly discount schedule: a set of
// weekdays plus a time-of-day range. It is a pure value type with a
// single membership predicate so the overnight-wrap logic stays
// independently testable.
//
// Weekday indexing follows the catalog convention Monday=0..Sunday=6.
type DiscountWindow struct {
	days      [7]bool
	startMins int
	endMins   int
}

var dayIndex = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// ParseWindow builds a DiscountWindow from catalog strings like
// "Sunday-Thursday" and "23:00-07:00".
//
// Day ranges are inclusive over the Monday=0..Sunday=6 week. When the
// start day's index is numerically after the end day's, the range wraps
// across the week boundary: "Sunday-Thursday" means {Sun,Mon,Tue,Wed,Thu}.
// Israeli work weeks are written this way, so the wrap must never be
// treated as an empty range.
func ParseWindow(weekDays, hours string) (DiscountWindow, error) {
	var w DiscountWindow

	days := strings.ToLower(strings.TrimSpace(weekDays))
	if days == "" {
		return w, &MalformedScheduleError{Spec: weekDays, Reason: "empty day range"}
	}
	if start, end, ok := strings.Cut(days, "-"); ok {
		si, sok := dayIndex[strings.TrimSpace(start)]
		ei, eok := dayIndex[strings.TrimSpace(end)]
		if !sok || !eok {
			return w, &MalformedScheduleError{Spec: weekDays, Reason: "unrecognized day name"}
		}
		for i := si; ; i = (i + 1) % 7 {
			w.days[i] = true
			if i == ei {
				break
			}
		}
	} else {
		i, ok := dayIndex[days]
		if !ok {
			return w, &MalformedScheduleError{Spec: weekDays, Reason: "unrecognized day name"}
		}
		w.days[i] = true
	}

	startStr, endStr, ok := strings.Cut(strings.TrimSpace(hours), "-")
	if !ok {
		return w, &MalformedScheduleError{Spec: hours, Reason: "expected HH:MM-HH:MM"}
	}
	var err error
	if w.startMins, err = parseHHMM(startStr); err != nil {
		return w, &MalformedScheduleError{Spec: hours, Reason: err.Error()}
	}
	if w.endMins, err = parseHHMM(endStr); err != nil {
		return w, &MalformedScheduleError{Spec: hours, Reason: err.Error()}
	}
	return w, nil
}

func parseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// Contains reports whether the timestamp falls inside the window.
// The time-of-day check is over [start, end) on a 24h clock:
// - start == end: the window is empty and matches nothing. "00:00-23:59"
//   is the catalog convention for "always on", not "00:00-00:00".
// - start < end: a same-day window, e.g. 07:00-17:00.
// - start > end: an overnight window, e.g. 23:00-07:00, the union of
//   "after start, before midnight" and "after midnight, before end".
func (w DiscountWindow) Contains(t time.Time) bool {
	// time.Weekday counts Sunday=0; shift to Monday=0.
	weekday := (int(t.Weekday()) + 6) % 7
	if !w.days[weekday] {
		return false
	}
	mins := t.Hour()*60 + t.Minute()
	switch {
	case w.startMins == w.endMins:
		return false
	case w.startMins < w.endMins:
		return mins >= w.startMins && mins < w.endMins
	default:
		return mins >= w.startMins || mins < w.endMins
	}
}
