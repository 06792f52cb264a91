package visibility

import (
	"git.sr.ht/~spc/go-log"
)

// Manual is driven by explicit Set calls, e.g. from the HTTP API.
type Manual struct {
	broadcaster
}

func NewManual(initial State) *Manual {
	return &Manual{broadcaster: broadcaster{current: initial}}
}

func (m *Manual) Set(state State) {
	if m.set(state) {
		log.Infof("visibility changed to '%s'", state)
	}
}
