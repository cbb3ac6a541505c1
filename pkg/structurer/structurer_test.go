package structurer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/debumedia/schema-generator/models"
)

func TestTransformHeadingsAndLists(t *testing.T) {
	s := New()
	html := "<h2>Our Services</h2><ul><li>Web Development</li><li>Security Audits</li></ul>"

	got := s.Transform(html, 1000)

	for _, want := range []string{
		"## [Our Services] ##",
		"[LIST START]",
		"- Web Development",
		"- Security Audits",
		"[LIST END]",
	} {
		if !strings.Contains(got.Text, want) {
			t.Errorf("Transform() text missing %q\ngot:\n%s", want, got.Text)
		}
	}
	if got.Truncated {
		t.Error("Transform() truncated = true, want false")
	}
	if got.OriginalLength != utf8.RuneCountInString(got.Text) {
		t.Errorf("OriginalLength = %d, want %d", got.OriginalLength, utf8.RuneCountInString(got.Text))
	}
}

func TestTransformMarkers(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "numbered list",
			html: "<ol><li>First step</li><li>Second step</li></ol>",
			want: []string{"[NUMBERED LIST START]", "- First step", "- Second step", "[NUMBERED LIST END]"},
		},
		{
			name: "section wrapper",
			html: "<section><p>Inside text</p></section>",
			want: []string{"[SECTION]", "Inside text", "[/SECTION]"},
		},
		{
			name: "article wrapper",
			html: "<article><p>Story body</p></article>",
			want: []string{"[ARTICLE]", "Story body", "[/ARTICLE]"},
		},
		{
			name: "emphasis",
			html: "<p>We are <strong>the best</strong> plumbers</p>",
			want: []string{"We are **the best** plumbers"},
		},
		{
			name: "absolute link keeps URL",
			html: `<p>Visit <a href="https://example.com/x">our shop</a> today</p>`,
			want: []string{"Visit our shop (https://example.com/x) today"},
		},
		{
			name: "div wrapped copy survives",
			html: "<div><div>Plain copy in a div</div></div>",
			want: []string{"Plain copy in a div"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Transform(tt.html, 5000)
			for _, w := range tt.want {
				if !strings.Contains(got.Text, w) {
					t.Errorf("Transform() missing %q\ngot:\n%s", w, got.Text)
				}
			}
		})
	}
}

func TestTransformDropsNonContent(t *testing.T) {
	s := New()
	html := `<p>Keep me</p><script>var dropped = 1;</script><style>.x{color:red}</style><!-- comment -->`

	got := s.Transform(html, 1000)

	if !strings.Contains(got.Text, "Keep me") {
		t.Errorf("Transform() lost content: %q", got.Text)
	}
	for _, banned := range []string{"dropped", "color:red", "comment"} {
		if strings.Contains(got.Text, banned) {
			t.Errorf("Transform() leaked non-content %q: %q", banned, got.Text)
		}
	}
}

func TestTransformRelativeLinkKeepsTextOnly(t *testing.T) {
	s := New()
	got := s.Transform(`<p>See <a href="/about">about us</a></p>`, 1000)

	if !strings.Contains(got.Text, "about us") {
		t.Fatalf("Transform() lost link text: %q", got.Text)
	}
	if strings.Contains(got.Text, "(/about)") {
		t.Errorf("Transform() surfaced relative URL: %q", got.Text)
	}
}

func TestTransformTruncation(t *testing.T) {
	s := New()

	var sb strings.Builder
	sb.WriteString("<p>")
	for i := 0; i < 400; i++ {
		sb.WriteString("word ")
	}
	sb.WriteString("</p>")
	html := sb.String()

	full := s.Transform(html, 100000)
	cut := s.Transform(html, 500)

	if !cut.Truncated {
		t.Fatal("Transform() truncated = false, want true")
	}
	if got := utf8.RuneCountInString(cut.Text); got > 500 {
		t.Errorf("truncated length = %d, want <= 500", got)
	}
	if cut.OriginalLength != full.OriginalLength {
		t.Errorf("OriginalLength = %d, want %d", cut.OriginalLength, full.OriginalLength)
	}
	// Never mid-word: the cut text must end on a complete "word".
	if !strings.HasSuffix(cut.Text, "word") {
		t.Errorf("truncation split a word: %q", cut.Text[len(cut.Text)-10:])
	}
	if full.Truncated {
		t.Error("roomy budget still reported truncation")
	}
}

func TestTransformDeterministic(t *testing.T) {
	s := New()
	html := `<article><h1>Title</h1><p>Some body text with <em>notes</em>.</p><ul><li>one</li><li>two</li></ul></article>`

	a := s.Transform(html, 300)
	b := s.Transform(html, 300)

	if a.Text != b.Text || a.Truncated != b.Truncated || a.OriginalLength != b.OriginalLength {
		t.Errorf("Transform() not deterministic:\n%+v\n%+v", a, b)
	}
	if len(a.Segments) != len(b.Segments) {
		t.Errorf("segment counts differ: %d vs %d", len(a.Segments), len(b.Segments))
	}
}

func TestTransformEmptyInput(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		html string
	}{
		{name: "empty string", html: ""},
		{name: "whitespace only", html: "   \n\t  "},
		{name: "markup without text", html: "<div><span></span></div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Transform(tt.html, 1000)
			if !got.Empty() {
				t.Errorf("Transform() = %+v, want empty result", got)
			}
			if got.Truncated {
				t.Error("empty input reported truncated")
			}
			if got.OriginalLength != 0 {
				t.Errorf("OriginalLength = %d, want 0", got.OriginalLength)
			}
		})
	}
}

func TestTransformDetectsLanguage(t *testing.T) {
	s := New()
	html := "<p>The quick brown fox jumps over the lazy dog. This paragraph is " +
		"plainly written in the English language and should be recognized as such " +
		"by any reasonable language detector with high confidence.</p>"

	got := s.Transform(html, 5000)

	if got.Language != "en" {
		t.Errorf("Language = %q, want %q (confidence %.2f)", got.Language, "en", got.LanguageConfidence)
	}
	if got.Language != "" && got.LanguageConfidence < minLanguageConfidence {
		t.Errorf("LanguageConfidence = %.2f, want >= %.2f", got.LanguageConfidence, minLanguageConfidence)
	}
}

func TestTruncateBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     string
		wantCut  bool
	}{
		{name: "under budget", text: "short text", maxChars: 100, want: "short text", wantCut: false},
		{name: "exact budget", text: "ten chars!", maxChars: 10, want: "ten chars!", wantCut: false},
		{name: "word boundary", text: "alpha beta gamma", maxChars: 12, want: "alpha beta", wantCut: true},
		{name: "unbroken run hard cuts", text: strings.Repeat("x", 50), maxChars: 10, want: strings.Repeat("x", 10), wantCut: true},
		{name: "no limit", text: "anything at all", maxChars: 0, want: "anything at all", wantCut: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cut := truncate(tt.text, tt.maxChars)
			if got != tt.want || cut != tt.wantCut {
				t.Errorf("truncate(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxChars, got, cut, tt.want, tt.wantCut)
			}
		})
	}
}

func TestSegmentKinds(t *testing.T) {
	s := New()
	html := "<h3>Head</h3><p>Para</p><ol><li>a</li></ol>"

	got := s.Transform(html, 1000)

	var kinds []models.SegmentKind
	for _, seg := range got.Segments {
		kinds = append(kinds, seg.Kind)
	}
	want := []models.SegmentKind{
		models.SegmentHeading,
		models.SegmentParagraph,
		models.SegmentNumberedOpen,
		models.SegmentNumberedItem,
		models.SegmentNumberedClose,
	}
	if len(kinds) != len(want) {
		t.Fatalf("segment kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("segment %d kind = %v, want %v", i, kinds[i], want[i])
		}
	}
	if got.Segments[0].Level != 3 {
		t.Errorf("heading level = %d, want 3", got.Segments[0].Level)
	}
	if got.Segments[3].Ordinal != 1 {
		t.Errorf("numbered item ordinal = %d, want 1", got.Segments[3].Ordinal)
	}
}
