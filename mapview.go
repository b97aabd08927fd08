// mapview.go
package main

import (
	"log"
)

// MapView ties a loaded collection to its timeline and sequence, and keeps
// the frame for the selected attribute up to date.
type MapView struct {
	data     *FeatureCollection
	style    SymbolStyle
	timeline Timeline
	sequence *Sequence // nil when the timeline is empty
	current  Frame
}

// newMapView derives the timeline once and renders the first frame. An
// empty timeline is not an error: the view renders the base map only and
// reports disabled controls.
func newMapView(data *FeatureCollection, style SymbolStyle) *MapView {
	v := &MapView{
		data:     data,
		style:    style,
		timeline: timelineFor(data),
	}

	seq, err := NewSequence(v.timeline)
	if err != nil {
		log.Printf("Warning: %v; sequence controls disabled, rendering base map only", err)
		return v
	}
	v.sequence = seq
	seq.Subscribe(func(index int, attribute string) {
		v.current = v.frame(index)
	})
	v.current = v.frame(seq.Index())
	return v
}

// Sequence returns the controller, or nil for an empty timeline.
func (v *MapView) Sequence() *Sequence { return v.sequence }

// Timeline returns the derived timeline.
func (v *MapView) Timeline() Timeline { return v.timeline }

// Current returns the frame for the selected attribute.
func (v *MapView) Current() Frame { return v.current }

// Controls returns slider/button state; disabled for an empty timeline.
func (v *MapView) Controls() Controls {
	if v.sequence == nil {
		return Controls{Enabled: false, Min: 0, Max: 0, Value: 0}
	}
	return v.sequence.Controls()
}

// Frames renders one frame per attribute without moving the selection.
func (v *MapView) Frames() []Frame {
	frames := make([]Frame, 0, v.timeline.Len())
	for i := 0; i < v.timeline.Len(); i++ {
		frames = append(frames, v.frame(i))
	}
	return frames
}

func (v *MapView) frame(index int) Frame {
	attribute := v.timeline.At(index)
	symbols, skipped := buildSymbols(v.data, attribute, v.style)

	f := Frame{
		Index:     index,
		Attribute: attribute,
		Year:      attributeYear(attribute),
		Symbols:   symbols,
		Skipped:   skipped,
	}

	var features []Feature
	if v.data != nil {
		features = v.data.Features
	}
	summary, err := summarize(features, attribute)
	if err != nil {
		log.Printf("Warning: legend unavailable: %v", err)
	} else {
		f.Legend = &summary
	}
	return f
}
