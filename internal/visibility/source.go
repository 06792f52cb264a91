package visibility

import (
	"fmt"
	"strings"
	"sync"
)

type State string

const (
	Visible State = "visible"
	Hidden  State = "hidden"
)

func ParseState(s string) (State, error) {
	switch State(strings.ToLower(s)) {
	case Visible:
		return Visible, nil
	case Hidden:
		return Hidden, nil
	}
	return "", fmt.Errorf("unknown visibility state '%s'", s)
}

//go:generate mockgen -package=visibility -destination=mock_listener.go . Listener
type Listener interface {
	OnVisibilityChange(state State)
}

// Source tells subscribers when the consumer becomes visible or hidden.
type Source interface {
	Subscribe(listener Listener)
	Unsubscribe(listener Listener)
	Current() State
}

// broadcaster holds the state and listeners shared by every source. Listeners
// are called outside the lock, in subscription order.
type broadcaster struct {
	lock      sync.RWMutex
	current   State
	listeners []Listener
}

func (b *broadcaster) Subscribe(listener Listener) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.listeners = append(b.listeners, listener)
}

func (b *broadcaster) Unsubscribe(listener Listener) {
	b.lock.Lock()
	defer b.lock.Unlock()
	for i, l := range b.listeners {
		if l == listener {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *broadcaster) Current() State {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.current
}

// set returns false when state is already the current one.
func (b *broadcaster) set(state State) bool {
	b.lock.Lock()
	if b.current == state {
		b.lock.Unlock()
		return false
	}
	b.current = state
	listeners := append([]Listener(nil), b.listeners...)
	b.lock.Unlock()

	for _, l := range listeners {
		l.OnVisibilityChange(state)
	}
	return true
}
