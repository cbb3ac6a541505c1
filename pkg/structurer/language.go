package structurer

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/debumedia/schema-generator/models"
)

// languageSampleChars bounds how much text the detector sees; accuracy
// plateaus well before this and detection cost grows with input size.
const languageSampleChars = 2000

// minLanguageConfidence gates how sure the detector must be before the
// result is surfaced at all.
const minLanguageConfidence = 0.65

var detectableLanguages = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Polish,
	lingua.Swedish,
	lingua.Turkish,
}

// detectLanguage guesses the content language from segment text. The
// detector is built on first use; it loads language models and is too
// expensive to construct per call.
func (s *Structurer) detectLanguage(segments []models.Segment) (string, float64, bool) {
	sample := languageSample(segments)
	if sample == "" {
		return "", 0, false
	}

	s.detectOnce.Do(func() {
		s.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectableLanguages...).
			Build()
	})

	lang, ok := s.detector.DetectLanguageOf(sample)
	if !ok {
		return "", 0, false
	}
	conf := s.detector.ComputeLanguageConfidence(sample, lang)
	if conf < minLanguageConfidence {
		return "", 0, false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), conf, true
}

// languageSample joins prose segments until the sample budget is filled.
// Marker lines carry no language signal so only segment text is used.
func languageSample(segments []models.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(seg.Text)
		if sb.Len() >= languageSampleChars {
			break
		}
	}
	sample := sb.String()
	if runes := []rune(sample); len(runes) > languageSampleChars {
		sample = string(runes[:languageSampleChars])
	}
	return strings.TrimSpace(sample)
}
