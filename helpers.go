package main

import (
	"strings"
)

// --- XML/HTML Escaping ---
func escapeXML(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&#34;")
		case '\'':
			buf.WriteString("&#39;") // &apos; is not valid in HTML4
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

var escapeHTML = escapeXML

// Simple CSS Escaping (basic)
func escapeCSS(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

// Simple ternary helper for inline conditions
func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}
	return falseVal
}
