// geojson.go
package main

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// FeatureCollection is a decoded GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one country record.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   *Geometry  `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry keeps the raw coordinates; only Point is understood here.
type Geometry struct {
	Type        string         `json:"type"`
	Coordinates jsontext.Value `json:"coordinates"`
}

// Properties is a GeoJSON property object that remembers the order its
// keys appeared in the document. Go maps do not, and the timeline is
// defined by that order.
type Properties struct {
	keys   []string
	values map[string]any
}

// NewProperties builds Properties from alternating key/value pairs,
// keeping the given order. Mostly useful in tests.
func NewProperties(kv ...any) Properties {
	p := Properties{values: make(map[string]any, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		p.Set(key, kv[i+1])
	}
	return p
}

// Keys returns the property names in document order.
func (p Properties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of properties.
func (p Properties) Len() int { return len(p.keys) }

// Get returns the raw decoded value for key.
func (p Properties) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// String returns the value for key as text, or "" when absent.
func (p Properties) String(key string) string {
	v, ok := p.values[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// Set adds or replaces a property. New keys go to the end.
func (p *Properties) Set(key string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	// Normalise Go numeric literals so lookups behave like decoded JSON.
	switch n := value.(type) {
	case int:
		value = float64(n)
	case int64:
		value = float64(n)
	case float32:
		value = float64(n)
	}
	p.values[key] = value
}

// Number returns the numeric value of key following the loose rules the
// map applies: JSON numbers, or strings holding a number. Anything else
// (absent, null, bool, blank or garbage text) reports ok=false.
func (p Properties) Number(key string) (float64, bool) {
	v, ok := p.values[key]
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, !math.IsNaN(val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// UnmarshalJSON decodes a property object, keeping key order.
func (p *Properties) UnmarshalJSON(b []byte) error {
	dec := jsontext.NewDecoder(bytes.NewReader(b))
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	if tok.Kind() == 'n' { // "properties": null is legal GeoJSON
		*p = Properties{}
		return nil
	}
	if tok.Kind() != '{' {
		return fmt.Errorf("properties must be a JSON object, got %v", tok.Kind())
	}

	decoded := Properties{values: make(map[string]any)}
	for dec.PeekKind() != '}' {
		name, err := dec.ReadToken()
		if err != nil {
			return err
		}
		// The token is only valid until the next decoder call.
		key := name.String()
		raw, err := dec.ReadValue()
		if err != nil {
			return err
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		decoded.Set(key, value)
	}
	if _, err := dec.ReadToken(); err != nil { // closing '}'
		return err
	}

	*p = decoded
	return nil
}

// MarshalJSON writes the properties back out in document order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.values[key])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Point returns the feature's location. Only Point geometries with two
// finite coordinates qualify.
func (f Feature) Point() (LatLng, error) {
	if f.Geometry == nil {
		return LatLng{}, fmt.Errorf("%w: feature has no geometry", ErrUnsupportedGeometry)
	}
	if !strings.EqualFold(f.Geometry.Type, "Point") {
		return LatLng{}, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, f.Geometry.Type)
	}
	var coords []float64
	if err := json.Unmarshal(f.Geometry.Coordinates, &coords); err != nil {
		return LatLng{}, fmt.Errorf("%w: bad coordinates: %v", ErrUnsupportedGeometry, err)
	}
	if len(coords) < 2 || math.IsInf(coords[0], 0) || math.IsInf(coords[1], 0) {
		return LatLng{}, fmt.Errorf("%w: point needs [lng, lat]", ErrUnsupportedGeometry)
	}
	// GeoJSON stores longitude first.
	return LatLng{Lat: coords[1], Lng: coords[0]}, nil
}

// NewPointFeature builds a Point feature at lng/lat.
func NewPointFeature(lng, lat float64, props Properties) Feature {
	coords, _ := json.Marshal([]float64{lng, lat})
	return Feature{
		Type:       "Feature",
		Geometry:   &Geometry{Type: "Point", Coordinates: coords},
		Properties: props,
	}
}

// parseFeatureCollection decodes a GeoJSON document.
func parseFeatureCollection(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("invalid GeoJSON: %w", err)
	}
	if !strings.EqualFold(fc.Type, "FeatureCollection") {
		return nil, fmt.Errorf("expected a FeatureCollection, got type %q", fc.Type)
	}
	return &fc, nil
}
