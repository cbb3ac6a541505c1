// Package structurer turns raw page HTML into a structure-preserving plain
// text form that survives the trip through a prompt: headings, lists and
// section boundaries become explicit markers instead of being flattened away.
package structurer

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pemistahl/lingua-go"

	"github.com/debumedia/schema-generator/models"
)

// Structurer converts HTML to StructuredContent. Safe for concurrent use.
type Structurer struct {
	detectOnce sync.Once
	detector   lingua.LanguageDetector
}

func New() *Structurer {
	return &Structurer{}
}

// Transform parses rawHTML and renders it as marker text, truncated to
// maxChars at a whitespace boundary. Empty or unparseable input yields an
// empty, non-truncated result rather than an error; the output is a
// deterministic function of (rawHTML, maxChars).
func (s *Structurer) Transform(rawHTML string, maxChars int) models.StructuredContent {
	if strings.TrimSpace(rawHTML) == "" {
		return models.StructuredContent{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return models.StructuredContent{}
	}

	// Non-content nodes are dropped entirely.
	doc.Find("script,style,noscript,template,iframe").Remove()

	// Inline transforms happen before the block walk so emphasis and link
	// URLs survive as plain text.
	doc.Find("b,strong,em,i").Each(func(_ int, sel *goquery.Selection) {
		text := normalizeText(sel.Text())
		if text != "" {
			sel.SetText("**" + text + "**")
		}
	})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := normalizeText(sel.Text())
		if text == "" {
			return
		}
		// Only absolute URLs are worth surfacing to the model.
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			sel.SetText(text + " (" + href + ")")
		}
	})

	var segments []models.Segment
	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	walk(body, &segments)

	rendered := models.RenderSegments(segments)
	originalLength := utf8.RuneCountInString(rendered)
	text, truncated := truncate(rendered, maxChars)

	content := models.StructuredContent{
		Segments:       segments,
		Text:           text,
		Truncated:      truncated,
		OriginalLength: originalLength,
	}
	if lang, conf, ok := s.detectLanguage(segments); ok {
		content.Language = lang
		content.LanguageConfidence = conf
	}
	return content
}

// walk visits element children in document order, emitting segments.
func walk(sel *goquery.Selection, segments *[]models.Segment) {
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if text := normalizeText(child.Text()); text != "" {
				level := int(goquery.NodeName(child)[1] - '0')
				*segments = append(*segments, models.Segment{Kind: models.SegmentHeading, Level: level, Text: text})
			}

		case "ul":
			appendList(child, segments, false)

		case "ol":
			appendList(child, segments, true)

		case "section":
			*segments = append(*segments, models.Segment{Kind: models.SegmentSectionOpen})
			walk(child, segments)
			*segments = append(*segments, models.Segment{Kind: models.SegmentSectionClose})

		case "article":
			*segments = append(*segments, models.Segment{Kind: models.SegmentArticleOpen})
			walk(child, segments)
			*segments = append(*segments, models.Segment{Kind: models.SegmentArticleClose})

		case "p", "blockquote", "pre", "table", "figcaption":
			if text := normalizeText(child.Text()); text != "" {
				*segments = append(*segments, models.Segment{Kind: models.SegmentParagraph, Text: text})
			}

		default:
			// Containers recurse; leaf elements with bare text become
			// paragraphs so div-wrapped copy is not lost.
			if child.Children().Length() > 0 {
				walk(child, segments)
			} else if text := normalizeText(child.Text()); text != "" {
				*segments = append(*segments, models.Segment{Kind: models.SegmentParagraph, Text: text})
			}
		}
	})
}

func appendList(list *goquery.Selection, segments *[]models.Segment, numbered bool) {
	items := list.ChildrenFiltered("li")
	if items.Length() == 0 {
		return
	}

	openKind, closeKind, itemKind := models.SegmentListOpen, models.SegmentListClose, models.SegmentListItem
	if numbered {
		openKind, closeKind, itemKind = models.SegmentNumberedOpen, models.SegmentNumberedClose, models.SegmentNumberedItem
	}

	*segments = append(*segments, models.Segment{Kind: openKind})
	items.Each(func(i int, item *goquery.Selection) {
		if text := normalizeText(item.Text()); text != "" {
			seg := models.Segment{Kind: itemKind, Text: text}
			if numbered {
				seg.Ordinal = i + 1
			}
			*segments = append(*segments, seg)
		}
	})
	*segments = append(*segments, models.Segment{Kind: closeKind})
}

// normalizeText collapses whitespace runs and joins lines with single spaces.
func normalizeText(input string) string {
	fields := strings.Fields(input)
	return strings.Join(fields, " ")
}

// truncate cuts text at the nearest whitespace boundary at or before
// maxChars, never mid-word. maxChars <= 0 disables truncation.
func truncate(text string, maxChars int) (string, bool) {
	if maxChars <= 0 {
		return text, false
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text, false
	}

	cut := -1
	for i := maxChars; i >= 0 && i < len(runes); i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	if cut <= 0 {
		// Single unbroken run longer than the budget: hard cut.
		cut = maxChars
	}
	return strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace), true
}
