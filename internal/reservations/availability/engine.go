// Package availability decides whether a car is free over a calendar date range.
//
// Two ranges conflict when start_date <= other.end AND end_date >= other.start, so a
// reservation ending on the day another one starts is a conflict.
package availability

import (
	"context"
	"time"
)

// OverlapCounter counts reservations of a car whose range overlaps [start, end] inclusively.
type OverlapCounter interface {
	CountOverlapping(ctx context.Context, carID int64, start, end time.Time) (int64, error)
}

type Engine struct {
	counter OverlapCounter
}

func NewEngine(counter OverlapCounter) *Engine {
	return &Engine{counter: counter}
}

// IsAvailable reports whether no existing reservation of carID overlaps [startDate, endDate].
// A storage failure is returned as is and never read as "available".
func (e *Engine) IsAvailable(ctx context.Context, carID int64, startDate, endDate time.Time) (bool, error) {
	n, err := e.counter.CountOverlapping(ctx, carID, startDate, endDate)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps applies the inclusive conflict rule to two intervals.
func Overlaps(a, b Interval) bool {
	return !a.Start.After(b.End) && !a.End.Before(b.Start)
}
