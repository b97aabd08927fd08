package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSVGRejectsEmptyCanvas(t *testing.T) {
	template := defaultTemplate()
	template.Canvas.Width = 0
	_, err := GenerateSVG(template, Frame{})
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestGenerateSVGDrawsLargestFirst(t *testing.T) {
	view := loadTestView(t, "women_parliament.geojson")
	require.NoError(t, view.Sequence().Seek("2020"))

	out, err := GenerateSVG(defaultTemplate(), view.Current())
	require.NoError(t, err)

	rwanda := strings.Index(out, "Country: Rwanda")
	japan := strings.Index(out, "Country: Japan")
	require.NotEqual(t, -1, rwanda)
	require.NotEqual(t, -1, japan)
	assert.Less(t, rwanda, japan, "Rwanda (61.3) is larger than Japan (9.9)")

	assert.Equal(t, 4, strings.Count(out, `class="prop-symbol"`))
	assert.Contains(t, out, ">Women in National Parliaments, 2020</text>")
	assert.Contains(t, out, `id="temporal-legend"`)
}

func TestGenerateSVGHiddenLegend(t *testing.T) {
	view := loadTestView(t, "two_countries.geojson")
	template := defaultTemplate()
	template.Legend.Visible = false

	out, err := GenerateSVG(template, view.Current())
	require.NoError(t, err)
	assert.NotContains(t, out, "temporal-legend")
	assert.Contains(t, out, `data-attribute="SeatsPerc_2019"`)
}

func TestProjection(t *testing.T) {
	template := defaultTemplate()
	proj := newProjection(template, worldExtent())

	x, y := proj.project(LatLng{Lat: 90, Lng: -180})
	assert.InDelta(t, template.Canvas.Padding, x, 1e-9)
	assert.InDelta(t, template.Canvas.Padding+titleHeight, y, 1e-9)

	x, y = proj.project(LatLng{Lat: -90, Lng: 180})
	assert.InDelta(t, template.Canvas.Width-template.Canvas.Padding, x, 1e-9)
	assert.InDelta(t, template.Canvas.Height-template.Canvas.Padding, y, 1e-9)
}

func TestDataExtent(t *testing.T) {
	symbols := []SymbolDescriptor{
		{Position: LatLng{Lat: 10, Lng: 0}},
		{Position: LatLng{Lat: 20, Lng: 40}},
	}
	b := dataExtent(symbols)
	assert.InDelta(t, -4, b.minX, 1e-9)
	assert.InDelta(t, 44, b.maxX, 1e-9)
	assert.InDelta(t, 9, b.minY, 1e-9)
	assert.InDelta(t, 21, b.maxY, 1e-9)

	assert.Equal(t, worldExtent(), dataExtent(symbols[:1]))
	assert.Equal(t, worldExtent(), dataExtent(nil))
}

func TestLegendOrigin(t *testing.T) {
	template := defaultTemplate()
	w, h := legendBlockSize()

	template.Legend.Position = "topleft"
	x, y := legendOrigin(template)
	assert.Equal(t, template.Canvas.Padding+10, x)
	assert.Equal(t, template.Canvas.Padding+titleHeight+10, y)

	template.Legend.Position = "bottomright"
	x, y = legendOrigin(template)
	assert.Equal(t, template.Canvas.Width-template.Canvas.Padding-w-10, x)
	assert.Equal(t, template.Canvas.Height-template.Canvas.Padding-h-10, y)
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt; &#34;d&#34; &#39;e&#39;", escapeXML(`a & b <c> "d" 'e'`))
}
