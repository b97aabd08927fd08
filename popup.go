// popup.go
package main

import (
	"fmt"
)

const popupHeadline = "Proportion of seats held by women in national parliament"

// popupValue renders the attribute's value the way it appears in the data.
func popupValue(props Properties, attribute string) string {
	if _, ok := props.Get(attribute); !ok {
		return "n/a"
	}
	s := props.String(attribute)
	if s == "" {
		return "n/a"
	}
	return s
}

// formatPopup builds the plain-text label for a feature and attribute.
func formatPopup(props Properties, attribute string) string {
	return fmt.Sprintf("Country: %s\n%s, %s: %s%%",
		props.String("Country"), popupHeadline, attributeYear(attribute), popupValue(props, attribute))
}

// formatPopupHTML is the markup variant used by the interactive map.
func formatPopupHTML(props Properties, attribute string) string {
	return fmt.Sprintf("<p><b>Country:</b> %s</p><p><b>%s, %s:</b> %s%%</p>",
		escapeHTML(props.String("Country")),
		popupHeadline,
		escapeHTML(attributeYear(attribute)),
		escapeHTML(popupValue(props, attribute)))
}
