package main

import (
	"bytes"
	"fmt"
	"math"
	"sort"
)

// Constants (Consider moving some to CanvasOptions in MapTemplate)
const defaultFontSize = 12.0
const defaultFont = "Arial, sans-serif"
const graticuleStep = 30.0 // Degrees between graticule lines
const titleHeight = 24.0

// Structure to hold calculated bounds
type bounds struct {
	minX, maxX, minY, maxY float64
	isSet                  bool
}

// Update bounds considering a point (x, y)
func (b *bounds) updatePoint(x, y float64) {
	if !b.isSet {
		b.minX, b.maxX = x, x
		b.minY, b.maxY = y, y
		b.isSet = true
	} else {
		b.minX = math.Min(b.minX, x)
		b.maxX = math.Max(b.maxX, x)
		b.minY = math.Min(b.minY, y)
		b.maxY = math.Max(b.maxY, y)
	}
}

// projection maps lng/lat into the drawable area with a plain
// equirectangular projection.
type projection struct {
	extent        bounds // x = lng, y = lat
	originX       float64
	originY       float64
	width, height float64
}

func newProjection(template MapTemplate, extent bounds) projection {
	pad := template.Canvas.Padding
	return projection{
		extent:  extent,
		originX: pad,
		originY: pad + titleHeight,
		width:   math.Max(template.Canvas.Width-2*pad, 1),
		height:  math.Max(template.Canvas.Height-2*pad-titleHeight, 1),
	}
}

// worldExtent covers the whole globe.
func worldExtent() bounds {
	b := bounds{}
	b.updatePoint(-180, -90)
	b.updatePoint(180, 90)
	return b
}

// dataExtent covers every symbol with a margin, falling back to the world
// when there is nothing (or only one point) to fit.
func dataExtent(symbols []SymbolDescriptor) bounds {
	b := bounds{}
	for _, s := range symbols {
		b.updatePoint(s.Position.Lng, s.Position.Lat)
	}
	if !b.isSet || b.maxX-b.minX < 1e-9 || b.maxY-b.minY < 1e-9 {
		return worldExtent()
	}
	marginX := (b.maxX - b.minX) * 0.1
	marginY := (b.maxY - b.minY) * 0.1
	b.updatePoint(math.Max(b.minX-marginX, -180), math.Max(b.minY-marginY, -90))
	b.updatePoint(math.Min(b.maxX+marginX, 180), math.Min(b.maxY+marginY, 90))
	return b
}

func (p projection) project(pos LatLng) (float64, float64) {
	spanX := p.extent.maxX - p.extent.minX
	spanY := p.extent.maxY - p.extent.minY
	x := p.originX + (pos.Lng-p.extent.minX)/spanX*p.width
	y := p.originY + (p.extent.maxY-pos.Lat)/spanY*p.height
	return x, y
}

// drawGraticule draws the frame and lat/lng lines inside the extent.
func drawGraticule(svg *bytes.Buffer, p projection, color string) {
	if color == "" {
		return
	}
	fmt.Fprintf(svg, `  <g id="graticule" stroke="%s" stroke-width="0.5" fill="none">`, escapeXML(color))
	svg.WriteString("\n")
	for lng := -180.0; lng <= 180; lng += graticuleStep {
		if lng < p.extent.minX || lng > p.extent.maxX {
			continue
		}
		x1, y1 := p.project(LatLng{Lat: p.extent.maxY, Lng: lng})
		x2, y2 := p.project(LatLng{Lat: p.extent.minY, Lng: lng})
		fmt.Fprintf(svg, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`, x1, y1, x2, y2)
		svg.WriteString("\n")
	}
	for lat := -90.0; lat <= 90; lat += graticuleStep {
		if lat < p.extent.minY || lat > p.extent.maxY {
			continue
		}
		x1, y1 := p.project(LatLng{Lat: lat, Lng: p.extent.minX})
		x2, y2 := p.project(LatLng{Lat: lat, Lng: p.extent.maxX})
		fmt.Fprintf(svg, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`, x1, y1, x2, y2)
		svg.WriteString("\n")
	}
	fmt.Fprintf(svg, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`, p.originX, p.originY, p.width, p.height)
	svg.WriteString("\n  </g>\n")
}

// drawSymbol writes one proportional circle. The <title> child is what
// browsers show on hover, standing in for the popup.
func drawSymbol(svg *bytes.Buffer, p projection, sym SymbolDescriptor) {
	cx, cy := p.project(sym.Position)
	fmt.Fprintf(svg, `    <circle class="prop-symbol" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-opacity="%.2f" stroke-width="%.2f">`,
		cx, cy, sym.Radius,
		escapeXML(sym.Style.FillColor), sym.Style.FillOpacity,
		escapeXML(sym.Style.Color), sym.Style.Opacity, sym.Style.Weight)
	fmt.Fprintf(svg, `<title>%s</title></circle>`, escapeXML(sym.PopupText))
	svg.WriteString("\n")
}

// legendOrigin places the legend block in the configured corner.
func legendOrigin(template MapTemplate) (float64, float64) {
	w, h := legendBlockSize()
	pad := template.Canvas.Padding
	left, top := pad+10, pad+titleHeight+10
	right := template.Canvas.Width - pad - w - 10
	bottom := template.Canvas.Height - pad - h - 10
	switch template.Legend.Position {
	case "bottomleft":
		return left, bottom
	case "topright":
		return right, top
	case "topleft":
		return left, top
	default:
		return right, bottom
	}
}

// Assemble the final SVG document
func assembleFinalSVG(svgBody bytes.Buffer, template MapTemplate) string {
	var finalSVG bytes.Buffer
	fmt.Fprintf(&finalSVG, `<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg">`,
		template.Canvas.Width, template.Canvas.Height)
	finalSVG.WriteString("\n")

	fmt.Fprintf(&finalSVG, `  <rect width="%.0f" height="%.0f" fill="%s" />`,
		template.Canvas.Width, template.Canvas.Height, escapeXML(template.Canvas.Background))
	finalSVG.WriteString("\n")

	finalSVG.Write(svgBody.Bytes())
	finalSVG.WriteString("</svg>")
	return finalSVG.String()
}

// GenerateSVG draws the proportional symbol map for one frame. A frame
// with no attribute (empty timeline) gives the base map alone.
func GenerateSVG(template MapTemplate, frame Frame) (string, error) {
	if template.Canvas.Width <= 0 || template.Canvas.Height <= 0 {
		return "", fmt.Errorf("%w: canvas must have a positive size", ErrInvalidTemplate)
	}

	extent := worldExtent()
	if template.Canvas.FitToData {
		extent = dataExtent(frame.Symbols)
	}
	proj := newProjection(template, extent)

	var svgBody bytes.Buffer

	// --- Title ---
	title := template.Title
	if frame.Year != "" {
		title = fmt.Sprintf("%s, %s", template.Title, frame.Year)
	}
	if title != "" {
		fmt.Fprintf(&svgBody, `  <text id="map-title" x="%.2f" y="%.2f" font-family="%s" font-size="%d" font-weight="bold">%s</text>`,
			template.Canvas.Padding, template.Canvas.Padding+titleHeight*0.7,
			escapeXML(template.Font.FontFamily), template.Font.FontSize+4, escapeXML(title))
		svgBody.WriteString("\n")
	}

	// --- Base map ---
	drawGraticule(&svgBody, proj, template.Canvas.LandColor)

	if frame.Attribute == "" {
		return assembleFinalSVG(svgBody, template), nil
	}

	// --- Symbols, largest first so small ones stay on top ---
	symbols := make([]SymbolDescriptor, len(frame.Symbols))
	copy(symbols, frame.Symbols)
	sort.SliceStable(symbols, func(i, j int) bool { return symbols[i].Radius > symbols[j].Radius })

	fmt.Fprintf(&svgBody, `  <g id="prop-symbols" data-attribute="%s">`, escapeXML(frame.Attribute))
	svgBody.WriteString("\n")
	for _, sym := range symbols {
		drawSymbol(&svgBody, proj, sym)
	}
	svgBody.WriteString("  </g>\n")

	// --- Legend ---
	if template.Legend.Visible {
		lx, ly := legendOrigin(template)
		drawLegend(&svgBody, lx, ly, legendHeading(template.Legend.Heading, frame.Attribute), frame.Legend, template.Symbol, template.Font)
	}

	return assembleFinalSVG(svgBody, template), nil
}
