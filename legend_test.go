package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func featuresWith(attribute string, values ...any) []Feature {
	features := make([]Feature, 0, len(values))
	for _, v := range values {
		features = append(features, NewPointFeature(0, 0, NewProperties(attribute, v)))
	}
	return features
}

func TestSummarize(t *testing.T) {
	summary, err := summarize(featuresWith("P_2010", 10.0, 30.0, 20.0), "P_2010")
	require.NoError(t, err)
	assert.Equal(t, LegendSummary{Min: 10, Midrange: 20, Max: 30}, summary)
}

func TestSummarizeIsMidrangeNotMean(t *testing.T) {
	summary, err := summarize(featuresWith("P_2010", 10.0, 11.0, 12.0, 50.0), "P_2010")
	require.NoError(t, err)
	assert.Equal(t, 30.0, summary.Midrange)
}

func TestSummarizeSkipsMissingValues(t *testing.T) {
	features := featuresWith("P_2010", 10.0, nil, "n/a", "40")
	features = append(features, NewPointFeature(0, 0, NewProperties("Other", 99.0)))

	summary, err := summarize(features, "P_2010")
	require.NoError(t, err)
	assert.Equal(t, LegendSummary{Min: 10, Midrange: 25, Max: 40}, summary)
}

func TestSummarizeSingleValue(t *testing.T) {
	summary, err := summarize(featuresWith("P_2010", 7.5), "P_2010")
	require.NoError(t, err)
	assert.Equal(t, LegendSummary{Min: 7.5, Midrange: 7.5, Max: 7.5}, summary)
}

func TestSummarizeNoValues(t *testing.T) {
	_, err := summarize(featuresWith("P_2010", nil, "x"), "P_2010")
	assert.ErrorIs(t, err, ErrMissingAttribute)

	_, err = summarize(nil, "P_2010")
	assert.ErrorIs(t, err, ErrMissingAttribute)
}

func TestFormatLegendValue(t *testing.T) {
	assert.Equal(t, "36.35%", formatLegendValue(36.35))
	assert.Equal(t, "24.5%", formatLegendValue(24.5))
	assert.Equal(t, "33.33%", formatLegendValue(100.0/3))
	assert.Equal(t, "48%", formatLegendValue(48))
}

func TestLegendHeading(t *testing.T) {
	assert.Equal(t, "Proportion in 2010", legendHeading("", "WomenPerc_2010"))
	assert.Equal(t, "Share in 2020", legendHeading("Share in", "WomenPerc_2020"))
}

func TestDrawLegend(t *testing.T) {
	template := defaultTemplate()
	summary := LegendSummary{Min: 24.5, Midrange: 36.35, Max: 48.2}

	var svg bytes.Buffer
	drawLegend(&svg, 5, 5, "Proportion in 2020", &summary, template.Symbol, template.Font)
	out := svg.String()

	for _, id := range []string{`id="temporal-legend"`, `id="attribute-legend"`, `id="max"`, `id="mean"`, `id="min"`, `id="max-text"`, `id="mean-text"`, `id="min-text"`} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, ">Proportion in 2020</text>")
	assert.Contains(t, out, ">48.2%</text>")
	assert.Contains(t, out, ">36.35%</text>")
	assert.Contains(t, out, ">24.5%</text>")

	// Largest circle is drawn first.
	assert.Less(t, strings.Index(out, `id="max"`), strings.Index(out, `id="min"`))
}

func TestDrawLegendWithoutSummary(t *testing.T) {
	template := defaultTemplate()
	var svg bytes.Buffer
	drawLegend(&svg, 0, 0, "Proportion in 2020", nil, template.Symbol, template.Font)

	assert.Contains(t, svg.String(), "No data")
	assert.NotContains(t, svg.String(), `id="attribute-legend"`)
}

func TestGenerateLegendSVG(t *testing.T) {
	frame := Frame{Attribute: "WomenPerc_2010", Year: "2010", Legend: &LegendSummary{Min: 1, Midrange: 2, Max: 3}}
	out := GenerateLegendSVG(defaultTemplate(), frame)

	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.True(t, strings.HasSuffix(out, "</svg>"))
	assert.Contains(t, out, "Proportion in 2010")
}
