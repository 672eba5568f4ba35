// Package encoding provides shared text escaping utilities for format
// emitters.
package encoding

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// EscapeXML escapes special characters for XML content.
// Uses the standard library's xml.EscapeText for proper escaping.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// EscapeXMLText escapes all five standard XML entities for text content.
// Quotes are legal in character data, but device importers have been
// observed choking on them, so text and attribute escaping are identical.
func EscapeXMLText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

// EscapeXMLAttr escapes text for use in XML attributes. Same five entities
// as EscapeXMLText.
func EscapeXMLAttr(s string) string {
	return EscapeXMLText(s)
}
