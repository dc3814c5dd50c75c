package futures

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEventType is returned for stream frames whose "e" tag is not handled.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrInvalidPeriod is returned when a query period is outside Periods.
	ErrInvalidPeriod = errors.New("invalid period")
)

type EventTypeError struct {
	Tag string
}

func (e *EventTypeError) Error() string {
	return fmt.Sprintf("unknown event type %q", e.Tag)
}

func (e *EventTypeError) Unwrap() error { return ErrUnknownEventType }

type PeriodError struct {
	Period string
}

func (e *PeriodError) Error() string {
	return fmt.Sprintf("invalid period %q", e.Period)
}

func (e *PeriodError) Unwrap() error { return ErrInvalidPeriod }
