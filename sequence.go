// sequence.go
package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// SequenceListener is told about every selection change.
type SequenceListener func(index int, attribute string)

// Sequence steps through a timeline with wraparound. Its index is the one
// piece of state the slider, the step buttons and the renderers share.
type Sequence struct {
	timeline  Timeline
	index     int
	listeners []SequenceListener
}

// NewSequence starts at index 0. An empty timeline has nothing to step
// through and returns ErrEmptyTimeline.
func NewSequence(timeline Timeline) (*Sequence, error) {
	if timeline.Len() == 0 {
		return nil, ErrEmptyTimeline
	}
	return &Sequence{timeline: timeline}, nil
}

// Subscribe registers fn for change notifications. Listeners run in
// registration order.
func (s *Sequence) Subscribe(fn SequenceListener) {
	s.listeners = append(s.listeners, fn)
}

// Index returns the selected position.
func (s *Sequence) Index() int { return s.index }

// Current returns the selected attribute key.
func (s *Sequence) Current() string { return s.timeline.At(s.index) }

// Timeline returns the timeline being stepped through.
func (s *Sequence) Timeline() Timeline { return s.timeline }

// Advance moves forward, wrapping from the last attribute to the first.
func (s *Sequence) Advance() string {
	s.index++
	// if past the last attribute, wrap around to first attribute
	if s.index > s.timeline.Last() {
		s.index = 0
	}
	s.notify()
	return s.Current()
}

// Retreat moves backward, wrapping from the first attribute to the last.
func (s *Sequence) Retreat() string {
	s.index--
	if s.index < 0 {
		s.index = s.timeline.Last()
	}
	s.notify()
	return s.Current()
}

// SetIndex jumps to i. The slider owns its bounds, so an out-of-range
// value is a caller bug: it is rejected and the selection stays put.
func (s *Sequence) SetIndex(i int) error {
	if i < 0 || i > s.timeline.Last() {
		err := fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidIndex, i, s.timeline.Last())
		log.Printf("Warning: %v", err)
		return err
	}
	s.index = i
	s.notify()
	return nil
}

// Seek selects an attribute by key or year.
func (s *Sequence) Seek(attrOrYear string) error {
	i := s.timeline.IndexOf(attrOrYear)
	if i < 0 {
		err := fmt.Errorf("%w: no attribute matches %q", ErrInvalidIndex, attrOrYear)
		log.Printf("Warning: %v", err)
		return err
	}
	return s.SetIndex(i)
}

// Apply runs a comma separated step script such as "next,next,prev,3".
// It stops at the first bad step; steps before it stay applied.
func (s *Sequence) Apply(script string) error {
	for _, raw := range strings.Split(script, ",") {
		step := strings.ToLower(strings.TrimSpace(raw))
		switch step {
		case "":
			continue
		case "next", "forward", "+":
			s.Advance()
		case "prev", "reverse", "-":
			s.Retreat()
		default:
			i, err := strconv.Atoi(step)
			if err != nil {
				return fmt.Errorf("%w: unknown step %q", ErrInvalidIndex, raw)
			}
			if err := s.SetIndex(i); err != nil {
				return err
			}
		}
	}
	return nil
}

// Controls returns the slider state a UI must mirror.
func (s *Sequence) Controls() Controls {
	return Controls{Enabled: true, Min: 0, Max: s.timeline.Last(), Value: s.index}
}

func (s *Sequence) notify() {
	attr := s.Current()
	for _, fn := range s.listeners {
		fn(s.index, attr)
	}
}
