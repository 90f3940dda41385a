package entity

// DocumentType is the closed set of document kinds the analyzer can infer.
type DocumentType string

const (
	DocumentTypeContract     DocumentType = "contract"
	DocumentTypeBrief        DocumentType = "brief"
	DocumentTypeMotion       DocumentType = "motion"
	DocumentTypePleading     DocumentType = "pleading"
	DocumentTypeMemo         DocumentType = "memo"
	DocumentTypeLetter       DocumentType = "letter"
	DocumentTypeEmail        DocumentType = "email"
	DocumentTypeSpreadsheet  DocumentType = "spreadsheet"
	DocumentTypePresentation DocumentType = "presentation"
	DocumentTypePdf          DocumentType = "pdf"
	DocumentTypeUnknown      DocumentType = "unknown"
)

// Severity grades a risk indicator.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// LegalTerm is a reference-table entry matched against text by substring
// containment. Not persisted beyond the snapshot that produced it.
type LegalTerm struct {
	Term        string
	Description string
	Category    string
}

// RiskIndicator is a matched risk phrase with its severity tag.
type RiskIndicator struct {
	Phrase      string
	Description string
	Severity    Severity
}

// EntityType tags an extracted span.
type EntityType string

const (
	EntityTypePerson       EntityType = "person"
	EntityTypeOrganization EntityType = "organization"
	EntityTypeLocation     EntityType = "location"
)

// ExtractedEntity is a raw text span with its inferred type. No
// disambiguation or coreference is attempted.
type ExtractedEntity struct {
	Text string
	Type EntityType
}
