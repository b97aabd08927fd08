package main

// --- Template Structs ---

// MapTemplate holds everything about how the map looks. It is loaded from a
// JSON or YAML file (see loadTemplate) and never derived from the data.
type MapTemplate struct {
	Title  string        `json:"title" yaml:"title"`
	Canvas CanvasOptions `json:"canvas" yaml:"canvas"`
	View   ViewOptions   `json:"view" yaml:"view"`
	Symbol SymbolStyle   `json:"symbol" yaml:"symbol"`
	Legend LegendOptions `json:"legend" yaml:"legend"`
	Font   FontStyle     `json:"font" yaml:"font"`
}

// CanvasOptions controls the static (SVG/PNG) rendering surface.
type CanvasOptions struct {
	Width      float64 `json:"width" yaml:"width" validate:"gt=0"`
	Height     float64 `json:"height" yaml:"height" validate:"gt=0"`
	Padding    float64 `json:"padding" yaml:"padding" validate:"gte=0"`
	Background string  `json:"background" yaml:"background" validate:"required,iscolor"`
	LandColor  string  `json:"land_color,omitempty" yaml:"land_color,omitempty" validate:"omitempty,iscolor"` // Graticule/frame color
	FitToData  bool    `json:"fit_to_data,omitempty" yaml:"fit_to_data,omitempty"`                             // Zoom to the symbols instead of the whole world
}

// ViewOptions configures the interactive (HTML) map widget.
type ViewOptions struct {
	CenterLat   float64 `json:"center_lat" yaml:"center_lat" validate:"gte=-90,lte=90"`
	CenterLng   float64 `json:"center_lng" yaml:"center_lng" validate:"gte=-180,lte=180"`
	Zoom        int     `json:"zoom" yaml:"zoom" validate:"gte=0,lte=20"`
	TileURL     string  `json:"tile_url" yaml:"tile_url" validate:"required"`
	Attribution string  `json:"attribution" yaml:"attribution"`
}

// SymbolStyle is the fixed style record shared by every proportional symbol.
type SymbolStyle struct {
	FillColor   string  `json:"fillColor" yaml:"fill_color" validate:"required,iscolor"`
	Color       string  `json:"color" yaml:"color" validate:"required,iscolor"` // Stroke color
	Weight      float64 `json:"weight" yaml:"weight" validate:"gte=0"`          // Stroke width
	Opacity     float64 `json:"opacity" yaml:"opacity" validate:"gte=0,lte=1"`
	FillOpacity float64 `json:"fillOpacity" yaml:"fill_opacity" validate:"gte=0,lte=1"`
}

// LegendOptions positions the legend block.
type LegendOptions struct {
	Visible  bool   `json:"visible" yaml:"visible"`
	Position string `json:"position" yaml:"position" validate:"oneof=bottomright bottomleft topright topleft"`
	Heading  string `json:"heading" yaml:"heading"` // Temporal legend prefix, e.g. "Proportion in"
}

// FontStyle defines common font properties
type FontStyle struct {
	FontFamily string `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	FontSize   int    `json:"font_size,omitempty" yaml:"font_size,omitempty" validate:"gte=0"`
}

// defaultTemplate is the stock green-circle look.
func defaultTemplate() MapTemplate {
	return MapTemplate{
		Title: "Women in National Parliaments",
		Canvas: CanvasOptions{
			Width:      960,
			Height:     480,
			Padding:    10,
			Background: "#F4F4F4",
			LandColor:  "#CCCCCC",
		},
		View: ViewOptions{
			CenterLat:   20,
			CenterLng:   0,
			Zoom:        2,
			TileURL:     "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: `&copy; <a href="http://www.openstreetmap.org/copyright">OpenStreetMap contributors</a>`,
		},
		Symbol: SymbolStyle{
			FillColor:   "#9EAD24",
			Color:       "#000",
			Weight:      1,
			Opacity:     1,
			FillOpacity: 0.8,
		},
		Legend: LegendOptions{
			Visible:  true,
			Position: "bottomright",
			Heading:  "Proportion in",
		},
		Font: FontStyle{
			FontFamily: defaultFont,
			FontSize:   int(defaultFontSize),
		},
	}
}

// --- Data Structs ---

// LatLng is a WGS84 position.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SymbolDescriptor is everything a renderer needs to draw one feature for
// one selected attribute. It is built fresh for every frame.
type SymbolDescriptor struct {
	Country     string      `json:"country"`
	CountryCode string      `json:"countryCode,omitempty"` // ISO 3166-1 alpha-2, empty when unknown
	Position    LatLng      `json:"position"`
	Value       float64     `json:"value"`
	Radius      float64     `json:"radius"`
	PopupOffset float64     `json:"popupOffset"` // Popups open above the circle
	Style       SymbolStyle `json:"style"`
	PopupText   string      `json:"popupText"`
	PopupHTML   string      `json:"popupHTML"`
}

// LegendSummary holds the three legend values. Midrange is (Min+Max)/2,
// not the arithmetic mean; it keeps the "mean" key on the wire because the
// legend circles are keyed max/mean/min.
type LegendSummary struct {
	Min      float64 `json:"min"`
	Midrange float64 `json:"mean"`
	Max      float64 `json:"max"`
}

// Frame is one render-ready snapshot of the map for a selected attribute.
type Frame struct {
	Index     int                `json:"index"`
	Attribute string             `json:"attribute"`
	Year      string             `json:"year"`
	Symbols   []SymbolDescriptor `json:"symbols"`
	Legend    *LegendSummary     `json:"legend,omitempty"` // nil when no feature has a usable value
	Skipped   int                `json:"skipped"`          // Features left off the map for this attribute
}

// Controls describes the state the sequence UI has to mirror.
type Controls struct {
	Enabled bool `json:"enabled"`
	Min     int  `json:"min"`
	Max     int  `json:"max"`
	Value   int  `json:"value"`
}
