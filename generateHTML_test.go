package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHTMLPayload(t *testing.T) {
	view := loadTestView(t, "women_parliament.geojson")
	payload := buildHTMLPayload(defaultTemplate(), view)

	assert.Equal(t, []string{"WomenPerc_2000", "WomenPerc_2010", "WomenPerc_2020"}, payload.Timeline)
	assert.Equal(t, Controls{Enabled: true, Min: 0, Max: 2, Value: 0}, payload.Controls)
	require.Len(t, payload.Frames, 3)

	f := payload.Frames[1]
	assert.Equal(t, "Proportion in 2010", f.Heading)
	require.Len(t, f.Circles, 3)
	assert.Equal(t, "max", f.Circles[0].Key)
	assert.Equal(t, "56.3%", f.Circles[0].Label)
	assert.InDelta(t, legendBaseline-f.Circles[0].R, f.Circles[0].CY, 1e-9)
	assert.Equal(t, "11.3%", f.Circles[2].Label)
}

func TestGenerateHTML(t *testing.T) {
	view := loadTestView(t, "two_countries.geojson")
	out, err := generateHTML(defaultTemplate(), view)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, leafletJS)
	assert.Contains(t, out, `"timeline":["SeatsPerc_2019","SeatsPerc_2020"]`)
	assert.Contains(t, out, `"controls":{"enabled":true,"min":0,"max":1,"value":0}`)
	assert.Contains(t, out, "slider.max = DATA.controls.max;")
	assert.NotContains(t, out, `class="data-error"`)
}

func TestGenerateHTMLEmptyTimeline(t *testing.T) {
	view := loadTestView(t, "no_timeline.geojson")
	out, err := generateHTML(defaultTemplate(), view)
	require.NoError(t, err)

	assert.Contains(t, out, `<div class="data-error">`)
	assert.Contains(t, out, `"controls":{"enabled":false,"min":0,"max":0,"value":0}`)
	assert.Contains(t, out, `"frames":[]`)
}

func TestGenerateHTMLEscapesData(t *testing.T) {
	fc := &FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{
			NewPointFeature(0, 0, NewProperties("Country", "</script><script>alert(1)</script>", "SeatsPerc_2020", 10.0)),
		},
	}
	template := defaultTemplate()
	template.Title = `Women <in> "Parliament"`

	out, err := generateHTML(template, newMapView(fc, template.Symbol))
	require.NoError(t, err)

	assert.Contains(t, out, `"timeline":["SeatsPerc_2020"]`)
	assert.NotContains(t, out, "<script>alert(1)")
	assert.Contains(t, out, `\u003c/script\u003e\u003cscript\u003ealert(1)`)
	assert.Contains(t, out, "<title>Women &lt;in&gt; &#34;Parliament&#34;</title>")
}

func TestGenerateHTMLFrameWithoutLegend(t *testing.T) {
	fc := &FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{
			NewPointFeature(18.6, 60.1, NewProperties("Country", "Sweden", "WomenPerc_2000", 42.7, "WomenPerc_2010", nil)),
		},
	}
	template := defaultTemplate()
	template.Title = ""
	view := newMapView(fc, template.Symbol)

	payload := buildHTMLPayload(template, view)
	require.Len(t, payload.Frames, 2)
	assert.Len(t, payload.Frames[0].Circles, 3)
	assert.Empty(t, payload.Frames[1].Circles)

	out, err := generateHTML(template, view)
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Proportional Symbol Map</title>")
	assert.Contains(t, out, "if (circles.length === 0) {")
	assert.Contains(t, out, "'No data'")
}
