package service

import (
	"strings"
	"unicode"

	"ai-legalassist-core/internal/constant"
	"ai-legalassist-core/internal/entity"
)

// IAnalyzerService is the pure text classifier. Every operation is
// deterministic given identical input text and reference tables; ambiguity
// resolves to DocumentTypeUnknown, which is a valid outcome, not an error.
type IAnalyzerService interface {
	DetectDocumentType(text string) entity.DocumentType
	DetectDocumentTypeFromFileName(fileName string) entity.DocumentType
	ExtractLegalTerms(text string) []entity.LegalTerm
	DetectRiskIndicators(text string) []entity.RiskIndicator
	ExtractEntities(text string) []entity.ExtractedEntity
	GenerateQuickSummary(text string, maxSentences int) string
	ScoreRisk(indicators []entity.RiskIndicator) float64
	RiskLabel(score float64) string
	Analyze(text string, maxSentences int) *entity.TextAnalysis
}

type analyzerService struct{}

func NewAnalyzerService() IAnalyzerService {
	return &analyzerService{}
}

// DetectDocumentType scores the text against each candidate type's keyword
// list in fixed priority order and returns the first candidate whose match
// ratio reaches its threshold. Order, not maximum score, resolves ties.
func (s *analyzerService) DetectDocumentType(text string) entity.DocumentType {
	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return entity.DocumentTypeUnknown
	}

	for _, set := range constant.DocumentKeywordSets {
		matches := 0
		for _, keyword := range set.Keywords {
			if strings.Contains(lowered, keyword) {
				matches++
			}
		}
		score := float64(matches) / float64(len(set.Keywords))
		if score >= set.Threshold {
			return set.Type
		}
	}
	return entity.DocumentTypeUnknown
}

// DetectDocumentTypeFromFileName is the independent filename heuristic. It
// never consults body text.
func (s *analyzerService) DetectDocumentTypeFromFileName(fileName string) entity.DocumentType {
	lowered := strings.ToLower(fileName)
	if strings.TrimSpace(lowered) == "" {
		return entity.DocumentTypeUnknown
	}

	for _, rule := range constant.FileNameRules {
		for _, sub := range rule.Substrings {
			if strings.Contains(lowered, sub) {
				return rule.Type
			}
		}
	}
	return entity.DocumentTypeUnknown
}

func (s *analyzerService) ExtractLegalTerms(text string) []entity.LegalTerm {
	lowered := strings.ToLower(text)
	var matched []entity.LegalTerm
	for _, term := range constant.LegalTerms {
		if strings.Contains(lowered, term.Term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// DetectRiskIndicators checks the high-severity table before the medium one;
// both may match the same text and the result is the union.
func (s *analyzerService) DetectRiskIndicators(text string) []entity.RiskIndicator {
	lowered := strings.ToLower(text)
	var matched []entity.RiskIndicator
	for _, indicator := range constant.HighRiskPhrases {
		if strings.Contains(lowered, indicator.Phrase) {
			matched = append(matched, indicator)
		}
	}
	for _, indicator := range constant.MediumRiskPhrases {
		if strings.Contains(lowered, indicator.Phrase) {
			matched = append(matched, indicator)
		}
	}
	return matched
}

// ExtractEntities tags capitalized spans as person/organization/location
// using the fixed lexicons. No disambiguation, no coreference.
func (s *analyzerService) ExtractEntities(text string) []entity.ExtractedEntity {
	tokens := strings.Fields(text)
	var entities []entity.ExtractedEntity
	seen := make(map[string]bool)

	for i := 0; i < len(tokens); i++ {
		if !isCapitalizedWord(tokens[i]) {
			continue
		}
		j := i
		for j < len(tokens) && isCapitalizedWord(tokens[j]) {
			j++
		}
		span := tokens[i:j]
		preceding := precedingToken(tokens, i)

		// A capitalized honorific ("Mr.", "Dr.") is a cue, not part of
		// the name. Shift it out of the span.
		if len(span) > 1 && isHonorific(span[0]) {
			preceding = strings.ToLower(span[0])
			span = span[1:]
		}
		spanText := strings.TrimRight(strings.Join(span, " "), ".,;:")

		entityType, ok := classifySpan(span, preceding)
		i = j - 1
		if !ok || seen[spanText] {
			continue
		}
		seen[spanText] = true
		entities = append(entities, entity.ExtractedEntity{Text: spanText, Type: entityType})
	}
	return entities
}

func isHonorific(token string) bool {
	lowered := strings.ToLower(token)
	for _, honorific := range constant.PersonHonorifics {
		if lowered == honorific {
			return true
		}
	}
	return false
}

func precedingToken(tokens []string, i int) string {
	if i == 0 {
		return ""
	}
	return strings.ToLower(tokens[i-1])
}

func classifySpan(span []string, preceding string) (entity.EntityType, bool) {
	for _, token := range span {
		normalized := strings.ToLower(strings.TrimRight(token, ",;:"))
		for _, suffix := range constant.OrganizationSuffixes {
			if normalized == suffix {
				return entity.EntityTypeOrganization, true
			}
		}
	}

	lowered := strings.ToLower(strings.TrimRight(strings.Join(span, " "), ".,;:"))
	for _, location := range constant.LocationGazetteer {
		if lowered == location {
			return entity.EntityTypeLocation, true
		}
	}

	for _, honorific := range constant.PersonHonorifics {
		if preceding == honorific {
			return entity.EntityTypePerson, true
		}
	}

	// Multi-word capitalized spans default to person; lone capitalized
	// words are too noisy (sentence starts) to tag.
	if len(span) >= 2 {
		return entity.EntityTypePerson, true
	}
	return "", false
}

func isCapitalizedWord(token string) bool {
	runes := []rune(token)
	if len(runes) < 2 {
		return false
	}
	return unicode.IsUpper(runes[0]) && unicode.IsLetter(runes[1])
}

// GenerateQuickSummary is a naive extractive summarizer: split on
// sentence-terminating punctuation, drop short fragments, and join the first
// maxSentences survivors. Falls back to a fixed-length prefix when nothing
// survives filtering.
func (s *analyzerService) GenerateQuickSummary(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = constant.SummaryDefaultMaxCount
	}

	var kept []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			sentence := strings.TrimSpace(current.String())
			current.Reset()
			if len(sentence) >= constant.SummaryMinSentenceLen {
				kept = append(kept, sentence)
				if len(kept) == maxSentences {
					break
				}
			}
		}
	}

	if len(kept) == 0 {
		trimmed := strings.TrimSpace(text)
		if len(trimmed) > constant.SummaryFallbackPrefix {
			return trimmed[:constant.SummaryFallbackPrefix]
		}
		return trimmed
	}
	summary := strings.Join(kept, " ")
	// Joining trimmed sentences can add separator bytes the source never
	// had; the summary must not outgrow the text it summarizes.
	if len(summary) > len(text) {
		summary = summary[:len(text)]
	}
	return summary
}

// ScoreRisk aggregates indicator severities onto a 0-10 scale.
func (s *analyzerService) ScoreRisk(indicators []entity.RiskIndicator) float64 {
	score := 0.0
	for _, indicator := range indicators {
		switch indicator.Severity {
		case entity.SeverityHigh:
			score += 2.5
		case entity.SeverityMedium:
			score += 1.0
		}
	}
	if score > 10 {
		return 10
	}
	return score
}

// RiskLabel is a pure step function over the aggregated score:
// 0-3 low, 3-5 moderate, 5-7 elevated, 7-9 high, 9+ critical.
func (s *analyzerService) RiskLabel(score float64) string {
	switch {
	case score < 3:
		return "Low Risk"
	case score < 5:
		return "Moderate Risk"
	case score < 7:
		return "Elevated Risk"
	case score < 9:
		return "High Risk"
	default:
		return "Critical Risk"
	}
}

// Analyze runs the full pipeline over one piece of text.
func (s *analyzerService) Analyze(text string, maxSentences int) *entity.TextAnalysis {
	indicators := s.DetectRiskIndicators(text)
	score := s.ScoreRisk(indicators)

	return &entity.TextAnalysis{
		DocumentType:   s.DetectDocumentType(text),
		LegalTerms:     s.ExtractLegalTerms(text),
		RiskIndicators: indicators,
		Entities:       s.ExtractEntities(text),
		Summary:        s.GenerateQuickSummary(text, maxSentences),
		RiskScore:      score,
		RiskLabel:      s.RiskLabel(score),
	}
}
