package main

import "errors"

var (
	// ErrDataLoad means the GeoJSON source could not be fetched or parsed.
	ErrDataLoad = errors.New("data load failed")
	// ErrMissingAttribute means a feature has no usable number for the selected attribute.
	ErrMissingAttribute = errors.New("missing attribute value")
	// ErrInvalidValue means the value is a number but cannot be sized (negative or infinite).
	ErrInvalidValue = errors.New("invalid attribute value")
	// ErrUnsupportedGeometry means a feature has no Point geometry with usable coordinates.
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
	// ErrInvalidIndex is returned by the sequence controller for out-of-range selections.
	ErrInvalidIndex = errors.New("invalid sequence index")
	// ErrEmptyTimeline means no attribute in the data matched the timeline marker.
	ErrEmptyTimeline = errors.New("empty timeline")
	// ErrInvalidTemplate means the map template could not be parsed or failed validation.
	ErrInvalidTemplate = errors.New("invalid template")
)
