package appstate

import (
	"sync"
	"time"
)

// Cancel stops a scheduled task. It is safe to call more than once and
// from inside the task itself.
type Cancel func()

// Scheduler runs delayed and periodic tasks for the Store.
type Scheduler interface {
	// After runs fn once after d.
	After(d time.Duration, fn func()) Cancel
	// Every runs fn every d until cancelled.
	Every(d time.Duration, fn func()) Cancel
}

// RealScheduler schedules on the wall clock.
type RealScheduler struct{}

func (RealScheduler) After(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

func (RealScheduler) Every(d time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(d)
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(stop)
		})
	}
}
