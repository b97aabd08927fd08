// legend.go
package main

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Legend box geometry.
const (
	legendWidth         = 160.0
	legendHeight        = 60.0
	legendCircleX       = 30.0
	legendTextX         = 65.0
	legendBaseline      = 59.0 // Circles sit on this line
	temporalLegendSpace = 22.0 // Room above the circles for "Proportion in <year>"
)

// legendCircle is one of the three nested legend circles.
type legendCircle struct {
	Key   string  // "max", "mean", "min"
	TextY float64 // Label baseline
}

// Drawn largest first so the smaller circles stay visible.
var legendCircles = []legendCircle{
	{Key: "max", TextY: 20},
	{Key: "mean", TextY: 40},
	{Key: "min", TextY: 60},
}

// summarize computes min, max and their midrange for attribute over every
// feature with a usable number. Features without one are ignored.
func summarize(features []Feature, attribute string) (LegendSummary, error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	found := 0
	for _, f := range features {
		value, ok := f.Properties.Number(attribute)
		if !ok || math.IsInf(value, 0) {
			continue
		}
		found++
		if value < lo {
			lo = value
		}
		if value > hi {
			hi = value
		}
	}
	if found == 0 {
		return LegendSummary{}, fmt.Errorf("%w: no feature has a value for %q", ErrMissingAttribute, attribute)
	}
	return LegendSummary{
		Min:      lo,
		Midrange: (hi + lo) / 2,
		Max:      hi,
	}, nil
}

// value returns the summary figure a legend circle stands for.
func (s LegendSummary) value(key string) float64 {
	switch key {
	case "max":
		return s.Max
	case "mean":
		return s.Midrange
	default:
		return s.Min
	}
}

// formatLegendValue rounds to two decimals and appends a percent sign.
func formatLegendValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + "%"
}

// legendHeading is the temporal legend text, e.g. "Proportion in 2010".
func legendHeading(prefix, attribute string) string {
	if prefix == "" {
		prefix = "Proportion in"
	}
	return prefix + " " + attributeYear(attribute)
}

// drawLegend writes the temporal heading and the attribute legend as a
// group positioned at (x, y). A nil summary draws the heading only.
func drawLegend(svg *bytes.Buffer, x, y float64, heading string, summary *LegendSummary, style SymbolStyle, font FontStyle) {
	fmt.Fprintf(svg, `  <g class="legend-control-container" transform="translate(%.2f, %.2f)">`, x, y)
	svg.WriteString("\n")
	fmt.Fprintf(svg, `    <text id="temporal-legend" x="0" y="14" font-family="%s" font-size="%d" font-weight="bold">%s</text>`,
		escapeXML(font.FontFamily), font.FontSize, escapeXML(heading))
	svg.WriteString("\n")

	if summary == nil {
		fmt.Fprintf(svg, `    <text x="0" y="%.0f" font-family="%s" font-size="%d">No data</text>`,
			temporalLegendSpace+legendHeight/2, escapeXML(font.FontFamily), font.FontSize)
		svg.WriteString("\n  </g>\n")
		return
	}

	fmt.Fprintf(svg, `    <g id="attribute-legend" transform="translate(0, %.0f)">`, temporalLegendSpace)
	svg.WriteString("\n")
	for _, c := range legendCircles {
		r := calcPropRadius(summary.value(c.Key))
		fmt.Fprintf(svg, `      <circle class="legend-circle" id="%s" cx="%.0f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.2f"/>`,
			c.Key, legendCircleX, legendBaseline-r, r,
			escapeXML(style.FillColor), style.FillOpacity, escapeXML(style.Color), style.Weight)
		svg.WriteString("\n")
	}
	for _, c := range legendCircles {
		fmt.Fprintf(svg, `      <text id="%s-text" x="%.0f" y="%.0f" font-family="%s" font-size="%d">%s</text>`,
			c.Key, legendTextX, c.TextY, escapeXML(font.FontFamily), font.FontSize, formatLegendValue(summary.value(c.Key)))
		svg.WriteString("\n")
	}
	svg.WriteString("    </g>\n  </g>\n")
}

// legendBlockSize is the space drawLegend occupies.
func legendBlockSize() (float64, float64) {
	return legendWidth, legendHeight + temporalLegendSpace
}

// GenerateLegendSVG renders the legend on its own.
func GenerateLegendSVG(template MapTemplate, frame Frame) string {
	w, h := legendBlockSize()
	pad := template.Canvas.Padding

	var body bytes.Buffer
	drawLegend(&body, pad, pad, legendHeading(template.Legend.Heading, frame.Attribute), frame.Legend, template.Symbol, template.Font)

	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg">`, w+2*pad, h+2*pad)
	out.WriteString("\n")
	fmt.Fprintf(&out, `  <rect width="%.0f" height="%.0f" fill="#FFFFFF" />`, w+2*pad, h+2*pad)
	out.WriteString("\n")
	out.Write(body.Bytes())
	out.WriteString("</svg>")
	return out.String()
}
