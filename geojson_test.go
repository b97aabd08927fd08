package main

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesKeepDocumentOrder(t *testing.T) {
	var p Properties
	err := json.Unmarshal([]byte(`{"Zeta": 1, "Country": "Canada", "Alpha_Perc_2000": 2.5, "Mid": null}`), &p)
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "Country", "Alpha_Perc_2000", "Mid"}, p.Keys())
	assert.Equal(t, 4, p.Len())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Zeta":1,"Country":"Canada","Alpha_Perc_2000":2.5,"Mid":null}`, string(out))
	assert.Equal(t, `{"Zeta":1,"Country":"Canada","Alpha_Perc_2000":2.5,"Mid":null}`, string(out))
}

func TestPropertiesNumber(t *testing.T) {
	p := NewProperties(
		"num", 24.5,
		"int", 3,
		"text", " 11.3 ",
		"blank", "  ",
		"word", "abc",
		"null", nil,
		"bool", true,
	)

	tests := []struct {
		key    string
		want   float64
		wantOK bool
	}{
		{"num", 24.5, true},
		{"int", 3, true},
		{"text", 11.3, true},
		{"blank", 0, false},
		{"word", 0, false},
		{"null", 0, false},
		{"bool", 0, false},
		{"absent", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := p.Number(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPropertiesString(t *testing.T) {
	p := NewProperties("Country", "Canada", "Seats", 338, "Share", 24.5, "Nothing", nil)
	assert.Equal(t, "Canada", p.String("Country"))
	assert.Equal(t, "338", p.String("Seats"))
	assert.Equal(t, "24.5", p.String("Share"))
	assert.Equal(t, "", p.String("Nothing"))
	assert.Equal(t, "", p.String("Absent"))
}

func TestPropertiesSetReplacesInPlace(t *testing.T) {
	p := NewProperties("a", 1, "b", 2)
	p.Set("a", 5)
	p.Set("c", 3)
	assert.Equal(t, []string{"a", "b", "c"}, p.Keys())
	v, _ := p.Number("a")
	assert.Equal(t, 5.0, v)
}

func TestParseFeatureCollection(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"Country": "Rwanda", "WomenPerc_2020": 61.3}, "geometry": {"type": "Point", "coordinates": [29.8739, -1.9403]}},
			{"type": "Feature", "properties": null, "geometry": null}
		]
	}`)

	fc, err := parseFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	pos, err := fc.Features[0].Point()
	require.NoError(t, err)
	assert.Equal(t, LatLng{Lat: -1.9403, Lng: 29.8739}, pos)
	assert.Equal(t, "Rwanda", fc.Features[0].Properties.String("Country"))

	assert.Equal(t, 0, fc.Features[1].Properties.Len())
	_, err = fc.Features[1].Point()
	assert.ErrorIs(t, err, ErrUnsupportedGeometry)
}

func TestParseFeatureCollectionManyProperties(t *testing.T) {
	data := []byte(`{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"Country": "Canada", "Code": "CAN", "WomenPerc_2000": 20.6, "WomenPerc_2010": "22.1", "Seats": 338, "Note": null},
		 "geometry": {"type": "Point", "coordinates": [-106.3468, 56.1304]}}
	]}`)

	fc, err := parseFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	props := fc.Features[0].Properties
	assert.Equal(t, []string{"Country", "Code", "WomenPerc_2000", "WomenPerc_2010", "Seats", "Note"}, props.Keys())
	assert.Equal(t, "CAN", props.String("Code"))
	v, ok := props.Number("WomenPerc_2010")
	assert.True(t, ok)
	assert.Equal(t, 22.1, v)
	assert.Equal(t, []string{"WomenPerc_2000", "WomenPerc_2010"}, timelineFor(fc).Keys())
}

func TestParseFeatureCollectionRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":         `{"type": `,
		"wrong type":       `{"type": "Feature", "properties": {}}`,
		"properties array": `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": [1, 2]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseFeatureCollection([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestFeaturePointBadCoordinates(t *testing.T) {
	f := Feature{Geometry: &Geometry{Type: "Point", Coordinates: []byte(`[12]`)}}
	_, err := f.Point()
	assert.ErrorIs(t, err, ErrUnsupportedGeometry)
}
