package entity

// TextAnalysis bundles every analyzer output for one piece of text.
type TextAnalysis struct {
	DocumentType   DocumentType
	LegalTerms     []LegalTerm
	RiskIndicators []RiskIndicator
	Entities       []ExtractedEntity
	Summary        string
	RiskScore      float64
	RiskLabel      string
}
