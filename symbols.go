// symbols.go
package main

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/biter777/countries"
)

// scaleFactor adjusts symbol size evenly across the map.
const scaleFactor = 50.0

// attributeMarker selects the time-series fields in the property set.
const attributeMarker = "Perc"

// calcPropRadius returns the radius of a circle whose area is proportional
// to value. value must be finite and non-negative; anything else yields a
// meaningless radius, so callers filter first.
func calcPropRadius(value float64) float64 {
	area := value * scaleFactor
	return math.Sqrt(area / math.Pi)
}

// --- Timeline ---

// Timeline is the ordered list of per-year attribute keys. It is fixed
// once built; the wraparound bound is computed alongside it.
type Timeline struct {
	keys []string
	last int
}

func newTimeline(keys []string) Timeline {
	cp := make([]string, len(keys))
	copy(cp, keys)
	return Timeline{keys: cp, last: len(cp) - 1}
}

// Len returns the number of attributes.
func (t Timeline) Len() int { return len(t.keys) }

// Last returns the highest valid index, or -1 for an empty timeline.
func (t Timeline) Last() int { return t.last }

// At returns the attribute at i. i must be in range.
func (t Timeline) At(i int) string { return t.keys[i] }

// Keys returns a copy of the attribute keys.
func (t Timeline) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// IndexOf finds an attribute by key or by year.
func (t Timeline) IndexOf(attrOrYear string) int {
	for i, k := range t.keys {
		if k == attrOrYear || attributeYear(k) == attrOrYear {
			return i
		}
	}
	return -1
}

// extractAttributes builds the timeline from one representative property
// set: every key containing the marker, in document order.
func extractAttributes(props Properties) Timeline {
	var keys []string
	for _, key := range props.Keys() {
		// only take attributes with percent values
		if strings.Contains(key, attributeMarker) {
			keys = append(keys, key)
		}
	}
	return newTimeline(keys)
}

// timelineFor derives the timeline from the first feature of fc.
func timelineFor(fc *FeatureCollection) Timeline {
	if fc == nil || len(fc.Features) == 0 {
		return newTimeline(nil)
	}
	return extractAttributes(fc.Features[0].Properties)
}

// attributeYear returns the part of the key after the first underscore,
// e.g. "WomenPerc_2010" -> "2010".
func attributeYear(attribute string) string {
	parts := strings.Split(attribute, "_")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// --- Symbol Builder ---

// attributeValue returns the sizeable value of attribute on props.
func attributeValue(props Properties, attribute string) (float64, error) {
	value, ok := props.Number(attribute)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingAttribute, attribute)
	}
	if value < 0 || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q is %v", ErrInvalidValue, attribute, value)
	}
	return value, nil
}

// countryCode resolves an ISO alpha-2 code for a country name.
func countryCode(name string) string {
	if name == "" {
		return ""
	}
	code := countries.ByName(name)
	if code == countries.Unknown {
		return ""
	}
	return code.Alpha2()
}

// buildSymbol produces the marker descriptor for one feature. Features with
// no usable value or no point geometry return an error instead of a
// NaN-sized symbol.
func buildSymbol(feature Feature, attribute string, style SymbolStyle) (SymbolDescriptor, error) {
	pos, err := feature.Point()
	if err != nil {
		return SymbolDescriptor{}, err
	}
	value, err := attributeValue(feature.Properties, attribute)
	if err != nil {
		return SymbolDescriptor{}, err
	}

	radius := calcPropRadius(value)
	country := feature.Properties.String("Country")

	return SymbolDescriptor{
		Country:     country,
		CountryCode: countryCode(country),
		Position:    pos,
		Value:       value,
		Radius:      radius,
		PopupOffset: -radius,
		Style:       style,
		PopupText:   formatPopup(feature.Properties, attribute),
		PopupHTML:   formatPopupHTML(feature.Properties, attribute),
	}, nil
}

// buildSymbols builds descriptors for every feature that can be drawn and
// reports how many were skipped.
func buildSymbols(fc *FeatureCollection, attribute string, style SymbolStyle) ([]SymbolDescriptor, int) {
	if fc == nil {
		return nil, 0
	}
	symbols := make([]SymbolDescriptor, 0, len(fc.Features))
	skipped := 0
	for i, feature := range fc.Features {
		sym, err := buildSymbol(feature, attribute, style)
		if err != nil {
			skipped++
			log.Printf("Skipping feature %d (%s) for %s: %v", i, feature.Properties.String("Country"), attribute, err)
			continue
		}
		symbols = append(symbols, sym)
	}
	return symbols, skipped
}
