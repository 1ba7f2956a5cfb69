package recommend

import (
	"errors"
	"fmt"
)

// ErrEmptySeries means there are no readings at all, so the maximum
// monthly consumption (and with it the activity threshold) is undefined.
// No recommendation is possible.
var ErrEmptySeries = errors.New("consumption series is empty")

// ErrNoActiveMonths means every month fell below the activity threshold,
// leaving no basis for a monthly estimate.
var ErrNoActiveMonths = errors.New("no active months above consumption threshold")

// MalformedScheduleError reports a plan day/time specification that
// cannot be parsed. One malformed catalog entry excludes that plan from
// ranking; it is not fatal to the whole batch.
type MalformedScheduleError struct {
	Spec   string
	Reason string
}

func (e *MalformedScheduleError) Error() string {
	return fmt.Sprintf("malformed schedule %q: %s", e.Spec, e.Reason)
}
