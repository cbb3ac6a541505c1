package models

import "strings"

// SegmentKind identifies the structural role of a segment within a page.
type SegmentKind int

const (
	SegmentParagraph SegmentKind = iota
	SegmentHeading
	SegmentListItem
	SegmentNumberedItem
	SegmentListOpen
	SegmentListClose
	SegmentNumberedOpen
	SegmentNumberedClose
	SegmentSectionOpen
	SegmentSectionClose
	SegmentArticleOpen
	SegmentArticleClose
)

// Segment is one typed unit of structured page content.
type Segment struct {
	Kind    SegmentKind `json:"kind"`
	Level   int         `json:"level,omitempty"`   // heading level (h1=1..h6=6)
	Ordinal int         `json:"ordinal,omitempty"` // position within a numbered list, 1-based
	Text    string      `json:"text,omitempty"`
}

// StructuredContent is the structure-preserving plain-text form of a page.
// Text is the rendered marker format, already truncated to the requested
// character budget; OriginalLength records the pre-truncation length so
// callers can tell how much was cut.
type StructuredContent struct {
	Segments       []Segment `json:"segments"`
	Text           string    `json:"text"`
	Truncated      bool      `json:"truncated"`
	OriginalLength int       `json:"original_length"`

	// Detected language, advisory only. Never part of the fingerprint.
	Language           string  `json:"language,omitempty"`
	LanguageConfidence float64 `json:"language_confidence,omitempty"`
}

// Empty reports whether structuring produced no content at all.
func (c StructuredContent) Empty() bool {
	return len(c.Segments) == 0 && c.Text == ""
}

// RenderSegments produces the marker-format text for a segment sequence.
// Headings render as "## [text] ##", lists are wrapped in [LIST START] /
// [LIST END] (or the NUMBERED variants), section and article wrappers emit
// [SECTION] / [ARTICLE] boundary lines.
func RenderSegments(segments []Segment) string {
	var sb strings.Builder

	for _, seg := range segments {
		switch seg.Kind {
		case SegmentHeading:
			sb.WriteString("## [")
			sb.WriteString(seg.Text)
			sb.WriteString("] ##\n")
		case SegmentListItem:
			sb.WriteString("- ")
			sb.WriteString(seg.Text)
			sb.WriteString("\n")
		case SegmentNumberedItem:
			sb.WriteString("- ")
			sb.WriteString(seg.Text)
			sb.WriteString("\n")
		case SegmentListOpen:
			sb.WriteString("[LIST START]\n")
		case SegmentListClose:
			sb.WriteString("[LIST END]\n")
		case SegmentNumberedOpen:
			sb.WriteString("[NUMBERED LIST START]\n")
		case SegmentNumberedClose:
			sb.WriteString("[NUMBERED LIST END]\n")
		case SegmentSectionOpen:
			sb.WriteString("[SECTION]\n")
		case SegmentSectionClose:
			sb.WriteString("[/SECTION]\n")
		case SegmentArticleOpen:
			sb.WriteString("[ARTICLE]\n")
		case SegmentArticleClose:
			sb.WriteString("[/ARTICLE]\n")
		default:
			if seg.Text != "" {
				sb.WriteString(seg.Text)
				sb.WriteString("\n\n")
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
