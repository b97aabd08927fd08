// generateHTML.go
package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

const (
	leafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

// htmlLegendCircle is a pre-sized legend circle for one frame.
type htmlLegendCircle struct {
	Key   string  `json:"key"`
	R     float64 `json:"r"`
	CY    float64 `json:"cy"`
	Label string  `json:"label"`
}

type htmlFrame struct {
	Frame
	Heading string             `json:"heading"`
	Circles []htmlLegendCircle `json:"circles"`
}

// htmlPayload is embedded in the page as the single source of map data.
type htmlPayload struct {
	Timeline []string    `json:"timeline"`
	Controls Controls    `json:"controls"`
	View     ViewOptions `json:"view"`
	Frames   []htmlFrame `json:"frames"`
}

func buildHTMLPayload(template MapTemplate, view *MapView) htmlPayload {
	frames := view.Frames()
	payload := htmlPayload{
		Timeline: view.Timeline().Keys(),
		Controls: view.Controls(),
		View:     template.View,
		Frames:   make([]htmlFrame, 0, len(frames)),
	}
	for _, f := range frames {
		hf := htmlFrame{Frame: f, Heading: legendHeading(template.Legend.Heading, f.Attribute)}
		if f.Legend != nil {
			for _, c := range legendCircles {
				v := f.Legend.value(c.Key)
				r := calcPropRadius(v)
				hf.Circles = append(hf.Circles, htmlLegendCircle{Key: c.Key, R: r, CY: legendBaseline - r, Label: formatLegendValue(v)})
			}
		}
		payload.Frames = append(payload.Frames, hf)
	}
	return payload
}

// generateHTML creates an interactive Leaflet page with every frame
// embedded, a year slider bound to the timeline and step buttons.
func generateHTML(template MapTemplate, view *MapView) (string, error) { // NOSONAR
	payload := buildHTMLPayload(template, view)
	data, err := json.Marshal(payload, jsontext.EscapeForHTML(true))
	if err != nil {
		return "", fmt.Errorf("failed to encode map data: %w", err)
	}

	pageTitle := template.Title
	if pageTitle == "" {
		pageTitle = "Proportional Symbol Map"
	}

	var htmlBuilder strings.Builder

	// --- Basic HTML Structure ---
	htmlBuilder.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	htmlBuilder.WriteString(fmt.Sprintf("<title>%s</title>\n", escapeHTML(pageTitle)))
	htmlBuilder.WriteString(fmt.Sprintf("<link rel=\"stylesheet\" href=\"%s\">\n", leafletCSS))
	htmlBuilder.WriteString("<style>\n")
	htmlBuilder.WriteString(fmt.Sprintf("body { margin: 0; font-family: %s; font-size: %dpx; }\n",
		escapeCSS(template.Font.FontFamily), template.Font.FontSize))
	htmlBuilder.WriteString(`
        #map { position: absolute; top: 0; bottom: 0; width: 100%; }
        .legend-control-container, .sequence-control-container { background: #fff; padding: 6px 8px; border-radius: 4px; box-shadow: 0 1px 4px rgba(0,0,0,0.3); }
        #temporal-legend { font-weight: bold; margin-bottom: 4px; }
        .range-slider { width: 200px; vertical-align: middle; }
        .data-error { position: absolute; top: 10px; left: 50px; z-index: 1000; background: #fee; border: 1px solid #c00; padding: 6px 10px; }
	`)
	htmlBuilder.WriteString("\n</style>\n</head>\n<body>\n")
	htmlBuilder.WriteString("<div id=\"map\"></div>\n")
	if !payload.Controls.Enabled {
		htmlBuilder.WriteString("<div class=\"data-error\">No time-series attributes were found in the data; showing the base map only.</div>\n")
	}
	htmlBuilder.WriteString(fmt.Sprintf("<script src=\"%s\"></script>\n", leafletJS))
	htmlBuilder.WriteString("<script>\n")
	htmlBuilder.WriteString("var DATA = ")
	htmlBuilder.Write(data)
	htmlBuilder.WriteString(";\n")

	// --- Map ---
	htmlBuilder.WriteString(`
var map = L.map("map", { center: [DATA.view.center_lat, DATA.view.center_lng], zoom: DATA.view.zoom });
L.tileLayer(DATA.view.tile_url, { attribution: DATA.view.attribution }).addTo(map);
var symbolLayer = L.layerGroup().addTo(map);

function drawSymbols(frame) {
  symbolLayer.clearLayers();
  frame.symbols.forEach(function (s) {
    var options = Object.assign({}, s.style, { radius: s.radius });
    var layer = L.circleMarker([s.position.lat, s.position.lng], options);
    layer.bindPopup(s.popupHTML, { offset: new L.Point(0, s.popupOffset) });
    layer.on({
      mouseover: function () { this.openPopup(); },
      mouseout: function () { this.closePopup(); }
    });
    symbolLayer.addLayer(layer);
  });
}
`)

	// --- Legend ---
	if template.Legend.Visible && payload.Controls.Enabled {
		htmlBuilder.WriteString(fmt.Sprintf(`
var LegendControl = L.Control.extend({
  options: { position: '%s' },
  onAdd: function () {
    var container = L.DomUtil.create('div', 'legend-control-container');
    var svg = '<div id="temporal-legend"></div><svg id="attribute-legend" width="%.0fpx" height="%.0fpx">';
    ['max', 'mean', 'min'].forEach(function (key) {
      svg += '<circle class="legend-circle" id="' + key + '" fill="%s" fill-opacity="%.2f" stroke="%s" cx="%.0f"/>';
    });
    [['max', 20], ['mean', 40], ['min', 60]].forEach(function (t) {
      svg += '<text id="' + t[0] + '-text" x="%.0f" y="' + t[1] + '"></text>';
    });
    container.innerHTML = svg + '</svg>';
    return container;
  }
});
map.addControl(new LegendControl());
`, escapeCSS(template.Legend.Position), legendWidth, legendHeight,
			escapeCSS(template.Symbol.FillColor), template.Symbol.FillOpacity, escapeCSS(template.Symbol.Color), legendCircleX, legendTextX))
	}
	htmlBuilder.WriteString(`
function updateLegend(frame) {
  var heading = document.getElementById('temporal-legend');
  if (!heading) { return; }
  heading.textContent = frame.heading;
  var circles = frame.circles || [];
  if (circles.length === 0) {
    ['max', 'mean', 'min'].forEach(function (key) {
      document.getElementById(key).setAttribute('r', 0);
      document.getElementById(key + '-text').textContent = key === 'mean' ? 'No data' : '';
    });
    return;
  }
  circles.forEach(function (c) {
    var circle = document.getElementById(c.key);
    circle.setAttribute('cy', c.cy);
    circle.setAttribute('r', c.r);
    document.getElementById(c.key + '-text').textContent = c.label;
  });
}

function showFrame(index) {
  var frame = DATA.frames[index];
  drawSymbols(frame);
  updateLegend(frame);
}
`)

	// --- Sequence Controls ---
	if payload.Controls.Enabled {
		htmlBuilder.WriteString(`
var SequenceControl = L.Control.extend({
  options: { position: 'bottomleft' },
  onAdd: function () {
    var container = L.DomUtil.create('div', 'sequence-control-container');
    container.innerHTML =
      '<button class="skip" id="reverse" title="Reverse">Reverse</button>' +
      '<input class="range-slider" type="range">' +
      '<button class="skip" id="forward" title="Forward">Skip</button>';
    L.DomEvent.disableClickPropagation(container);
    return container;
  }
});
map.addControl(new SequenceControl());

var slider = document.querySelector('.range-slider');
slider.min = DATA.controls.min;
slider.max = DATA.controls.max;
slider.step = 1;
slider.value = DATA.controls.value;

function select(index) {
  slider.value = index;
  showFrame(index);
}
document.getElementById('forward').addEventListener('click', function () {
  var index = Number(slider.value) + 1;
  select(index > DATA.controls.max ? DATA.controls.min : index);
});
document.getElementById('reverse').addEventListener('click', function () {
  var index = Number(slider.value) - 1;
  select(index < DATA.controls.min ? DATA.controls.max : index);
});
slider.addEventListener('input', function () { showFrame(Number(slider.value)); });
showFrame(DATA.controls.value);
`)
	}

	htmlBuilder.WriteString("</script>\n</body>\n</html>")

	log.Printf("HTML map generated with %d frame(s), controls %s.", len(payload.Frames), ternary(payload.Controls.Enabled, "enabled", "disabled"))
	return htmlBuilder.String(), nil
}
