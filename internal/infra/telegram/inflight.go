package telegram

import (
	"sync"

	"gopkg.in/telebot.v3"
)

// InFlight counts running handlers so shutdown can wait for them. bot.Stop only
// stops polling; handlers already dispatched keep running on their own goroutines.
type InFlight struct {
	mu      sync.Mutex
	closed  bool
	running sync.WaitGroup
}

func NewInFlight() *InFlight {
	return &InFlight{}
}

// Middleware must be installed with bot.Use before handlers are registered.
// Updates arriving after Drain has started are dropped.
func (f *InFlight) Middleware(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			return nil
		}
		f.running.Add(1)
		f.mu.Unlock()
		defer f.running.Done()

		return next(c)
	}
}

// Drain refuses new handlers and blocks until running ones return.
func (f *InFlight) Drain() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.running.Wait()
}
