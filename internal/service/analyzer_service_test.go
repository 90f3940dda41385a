package service

import (
	"strings"
	"testing"

	"ai-legalassist-core/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestDetectDocumentType(t *testing.T) {
	analyzer := NewAnalyzerService()

	tests := []struct {
		name string
		text string
		want entity.DocumentType
	}{
		{
			name: "contract opening clause",
			text: "This Agreement is entered into between Party A and Party B. WHEREAS the parties wish to cooperate...",
			want: entity.DocumentTypeContract,
		},
		{
			name: "litigation brief",
			text: "Plaintiff respectfully submits this brief to the Court. Statement of Facts: the defendant breached. Argument follows.",
			want: entity.DocumentTypeBrief,
		},
		{
			name: "email",
			text: "Subject: Follow-up on the call. Dear counsel, please find attached. Kind regards, Jane",
			want: entity.DocumentTypeEmail,
		},
		{
			name: "memo header block",
			text: "MEMORANDUM\nTo: Partners\nFrom: Associate\nRe: Diligence findings\nDate: March 3",
			want: entity.DocumentTypeMemo,
		},
		{
			name: "plain prose stays unknown",
			text: "The weather was pleasant and the coffee was strong that morning.",
			want: entity.DocumentTypeUnknown,
		},
		{
			name: "empty text",
			text: "   ",
			want: entity.DocumentTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyzer.DetectDocumentType(tt.text))
		})
	}
}

// Contract is scored before brief, so text clearing both thresholds resolves
// to contract regardless of which side scores higher.
func TestDetectDocumentTypeOrderResolvesTies(t *testing.T) {
	analyzer := NewAnalyzerService()

	text := "This agreement between each party, entered into today, whereas the plaintiff and defendant appeared before the court with a statement of facts and argument."
	assert.Equal(t, entity.DocumentTypeContract, analyzer.DetectDocumentType(text))
}

// A match ratio exactly at the threshold counts as a detection. With ten
// contract keywords and a 0.30 threshold, three matches must be enough.
func TestDetectDocumentTypeThresholdInclusive(t *testing.T) {
	analyzer := NewAnalyzerService()

	three := "whereas the party signed this agreement"
	assert.Equal(t, entity.DocumentTypeContract, analyzer.DetectDocumentType(three))

	two := "whereas the party signed"
	assert.Equal(t, entity.DocumentTypeUnknown, analyzer.DetectDocumentType(two))
}

func TestDetectDocumentTypeFromFileName(t *testing.T) {
	analyzer := NewAnalyzerService()

	tests := []struct {
		fileName string
		want     entity.DocumentType
	}{
		{"NDA_Agreement.docx", entity.DocumentTypeContract},
		{"Master_Services_Agreement_v3.pdf", entity.DocumentTypeContract},
		{"appellate_brief_final.docx", entity.DocumentTypeBrief},
		{"motion_to_dismiss.pdf", entity.DocumentTypeBrief},
		{"complaint_draft.docx", entity.DocumentTypePleading},
		{"memo_to_file.docx", entity.DocumentTypeMemo},
		{"engagement_letter.docx", entity.DocumentTypeLetter},
		{"thread.eml", entity.DocumentTypeEmail},
		{"billing_summary.xlsx", entity.DocumentTypeSpreadsheet},
		{"pitch.pptx", entity.DocumentTypePresentation},
		{"scan_0042.pdf", entity.DocumentTypePdf},
		{"random_file.txt", entity.DocumentTypeUnknown},
		{"", entity.DocumentTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, analyzer.DetectDocumentTypeFromFileName(tt.fileName))
		})
	}
}

func TestExtractLegalTerms(t *testing.T) {
	analyzer := NewAnalyzerService()

	text := "The contract includes a force majeure clause and provides for binding arbitration under Delaware governing law."
	terms := analyzer.ExtractLegalTerms(text)

	var found []string
	for _, term := range terms {
		found = append(found, term.Term)
	}
	assert.Contains(t, found, "force majeure")
	assert.Contains(t, found, "arbitration")
	assert.Contains(t, found, "governing law")
	assert.NotContains(t, found, "estoppel")

	assert.Empty(t, analyzer.ExtractLegalTerms("nothing legal here"))
}

func TestDetectRiskIndicators(t *testing.T) {
	analyzer := NewAnalyzerService()

	text := "Vendor accepts unlimited liability; the term is subject to automatic renewal at Client's sole discretion."
	indicators := analyzer.DetectRiskIndicators(text)
	assert.Len(t, indicators, 3)

	// High severity hits precede medium ones irrespective of text position.
	assert.Equal(t, entity.SeverityHigh, indicators[0].Severity)
	assert.Equal(t, entity.SeverityHigh, indicators[1].Severity)
	assert.Equal(t, entity.SeverityMedium, indicators[2].Severity)
}

func TestScoreRisk(t *testing.T) {
	analyzer := NewAnalyzerService()

	high := entity.RiskIndicator{Severity: entity.SeverityHigh}
	medium := entity.RiskIndicator{Severity: entity.SeverityMedium}

	assert.Equal(t, 0.0, analyzer.ScoreRisk(nil))
	assert.Equal(t, 2.5, analyzer.ScoreRisk([]entity.RiskIndicator{high}))
	assert.Equal(t, 3.5, analyzer.ScoreRisk([]entity.RiskIndicator{high, medium}))

	// Five highs would be 12.5 uncapped.
	many := []entity.RiskIndicator{high, high, high, high, high}
	assert.Equal(t, 10.0, analyzer.ScoreRisk(many))
}

func TestRiskLabelBoundaries(t *testing.T) {
	analyzer := NewAnalyzerService()

	tests := []struct {
		score float64
		want  string
	}{
		{0, "Low Risk"},
		{2.9, "Low Risk"},
		{3.0, "Moderate Risk"},
		{4.9, "Moderate Risk"},
		{5.0, "Elevated Risk"},
		{6.9, "Elevated Risk"},
		{7.0, "High Risk"},
		{8.9, "High Risk"},
		{9.0, "Critical Risk"},
		{10, "Critical Risk"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, analyzer.RiskLabel(tt.score), "score %v", tt.score)
	}
}

func TestExtractEntities(t *testing.T) {
	analyzer := NewAnalyzerService()

	text := "Acme Corp retained Mr. John Smith to negotiate with Jane Doe in New York."
	entities := analyzer.ExtractEntities(text)

	byText := make(map[string]entity.EntityType)
	for _, e := range entities {
		byText[e.Text] = e.Type
	}

	assert.Equal(t, entity.EntityTypeOrganization, byText["Acme Corp"])
	assert.Equal(t, entity.EntityTypePerson, byText["John Smith"])
	assert.Equal(t, entity.EntityTypePerson, byText["Jane Doe"])
	assert.Equal(t, entity.EntityTypeLocation, byText["New York"])
}

func TestExtractEntitiesSkipsLoneCapitalizedWords(t *testing.T) {
	analyzer := NewAnalyzerService()

	// Sentence-initial capitals with no lexicon hit are too noisy to tag.
	entities := analyzer.ExtractEntities("Yesterday the vendor delayed. Tomorrow it ships.")
	assert.Empty(t, entities)
}

func TestExtractEntitiesDeduplicates(t *testing.T) {
	analyzer := NewAnalyzerService()

	entities := analyzer.ExtractEntities("Acme Corp notified Acme Corp of the breach.")
	assert.Len(t, entities, 1)
}

func TestGenerateQuickSummary(t *testing.T) {
	analyzer := NewAnalyzerService()

	text := "This agreement sets out the full terms of engagement. Ok. The vendor shall deliver the software by March. Payment is due within thirty days of invoice. Late payments accrue interest at two percent."
	summary := analyzer.GenerateQuickSummary(text, 3)

	// "Ok." is under the minimum sentence length and must be dropped.
	assert.NotContains(t, summary, "Ok.")
	assert.Equal(t, 3, strings.Count(summary, "."))
	assert.True(t, strings.HasPrefix(summary, "This agreement sets out"))
	assert.Contains(t, summary, "Payment is due")
	assert.NotContains(t, summary, "Late payments")
}

func TestGenerateQuickSummaryFallbackPrefix(t *testing.T) {
	analyzer := NewAnalyzerService()

	// No terminating punctuation at all: fall back to a fixed-length prefix.
	long := strings.Repeat("clause ", 60)
	summary := analyzer.GenerateQuickSummary(long, 3)
	assert.Equal(t, 160, len(summary))

	short := "short fragment without punctuation"
	assert.Equal(t, short, analyzer.GenerateQuickSummary(short, 3))
}

func TestGenerateQuickSummaryNeverOutgrowsInput(t *testing.T) {
	analyzer := NewAnalyzerService()

	// Two qualifying sentences with no whitespace between them: the join
	// inserts a separator the source never had, and the result must still
	// fit within the source.
	text := strings.Repeat("a", 24) + "." + strings.Repeat("b", 24) + "."
	summary := analyzer.GenerateQuickSummary(text, 3)

	assert.LessOrEqual(t, len(summary), len(text))
	assert.True(t, strings.HasPrefix(summary, strings.Repeat("a", 24)+"."))
}

func TestAnalyzeBundlesPipeline(t *testing.T) {
	analyzer := NewAnalyzerService()

	text := "This Agreement is entered into between Acme Corp and the undersigned party. WHEREAS the vendor accepts unlimited liability for breaches. The indemnification clause survives termination of this agreement."
	analysis := analyzer.Analyze(text, 2)

	assert.Equal(t, entity.DocumentTypeContract, analysis.DocumentType)
	assert.NotEmpty(t, analysis.LegalTerms)
	assert.Len(t, analysis.RiskIndicators, 1)
	assert.Equal(t, 2.5, analysis.RiskScore)
	assert.Equal(t, "Low Risk", analysis.RiskLabel)
	assert.NotEmpty(t, analysis.Summary)
}
