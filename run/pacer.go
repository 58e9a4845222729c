package run

import (
	"context"
	"time"
)

// Pacer invokes tick roughly every interval until tick reports done or ctx
// is cancelled. It returns ctx.Err() on cancellation and nil otherwise.
type Pacer interface {
	Pace(ctx context.Context, interval time.Duration, tick func() (done bool)) error
}

// TickerPacer paces with a time.Ticker. A non-positive interval ticks
// without waiting.
type TickerPacer struct{}

func (TickerPacer) Pace(ctx context.Context, interval time.Duration, tick func() bool) error {
	if interval <= 0 {
		return ImmediatePacer{}.Pace(ctx, interval, tick)
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if tick() {
				return nil
			}
		}
	}
}

// ImmediatePacer ticks back to back, checking ctx before each tick.
type ImmediatePacer struct{}

func (ImmediatePacer) Pace(ctx context.Context, _ time.Duration, tick func() bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if tick() {
			return nil
		}
	}
}
