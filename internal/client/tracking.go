package client

import (
	"fmt"
	"sync"
	"time"
)

// Order status codes as returned by the backend.
const (
	StatusOpen                 = 0
	StatusClosed               = 1
	StatusCancelled            = 2
	StatusAwaitingConfirmation = 3
)

// Timeline step labels.
const (
	StepPlaced       = "Placed"
	StepAwaiting     = "Awaiting Confirmation"
	StepPreparing    = "Preparing"
	StepServed       = "Served"
	StepCancelled    = "Cancelled"
	AllStepsComplete = 999
)

// Timeline projects a status code onto the display steps and the index
// of the step currently in progress. A step is completed iff its index
// is below current, in progress iff equal, pending otherwise. Closed
// orders return AllStepsComplete so every step reads as done.
func Timeline(status int) (steps []string, current int) {
	switch status {
	case StatusAwaitingConfirmation:
		return []string{StepPlaced, StepAwaiting}, 1
	case StatusOpen:
		return []string{StepPlaced, StepPreparing, StepServed}, 1
	case StatusClosed:
		return []string{StepPlaced, StepPreparing, StepServed}, AllStepsComplete
	case StatusCancelled:
		return []string{StepPlaced, StepCancelled}, 1
	default:
		return []string{StepPlaced}, 0
	}
}

// StageLabel is a second, independent projection of the same status
// integer, used for the short stage label elsewhere in the flow. It
// deliberately does not agree with Timeline for codes 1-3: the two
// mappings are unreconciled in the product and are kept as parallel
// projections until that is clarified.
func StageLabel(status int) string {
	switch status {
	case 0:
		return "placed"
	case 1:
		return "accepted"
	case 2:
		return "preparing"
	default:
		return "served"
	}
}

// Remaining formats the time left until est as MM:SS. It clamps at
// "00:00" once est has passed; it never goes negative and never wraps.
func Remaining(est, now time.Time) string {
	d := est.Sub(now)
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Countdown re-renders the remaining time once per second until
// stopped. Stop is safe to call from any exit path and more than once.
type Countdown struct {
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// StartCountdown begins ticking immediately and calls onTick with the
// formatted remainder every second, including the clamped "00:00" after
// est elapses.
func StartCountdown(est time.Time, onTick func(string)) *Countdown {
	c := &Countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		onTick(Remaining(est, time.Now()))
		for {
			select {
			case <-c.stop:
				return
			case now := <-ticker.C:
				onTick(Remaining(est, now))
			}
		}
	}()
	return c
}

func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}
