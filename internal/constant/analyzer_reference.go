package constant

import "ai-legalassist-core/internal/entity"

// DocumentKeywordSet is one candidate document type with its fixed keyword
// phrase list and detection threshold. Candidates are evaluated in the order
// they appear in DocumentKeywordSets; the first candidate whose match ratio
// reaches its threshold wins. Ties are resolved by order, not by max score.
type DocumentKeywordSet struct {
	Type      entity.DocumentType
	Keywords  []string
	Threshold float64
}

// DocumentKeywordSets in fixed priority order: contract, brief, email, memo.
var DocumentKeywordSets = []DocumentKeywordSet{
	{
		Type:      entity.DocumentTypeContract,
		Threshold: 0.30,
		Keywords: []string{
			"agreement",
			"whereas",
			"party",
			"entered into",
			"hereinafter",
			"terms and conditions",
			"governing law",
			"in witness whereof",
			"indemnif",
			"witnesseth",
		},
	},
	{
		Type:      entity.DocumentTypeBrief,
		Threshold: 0.25,
		Keywords: []string{
			"plaintiff",
			"defendant",
			"court",
			"statement of facts",
			"argument",
			"respectfully submitted",
			"appellant",
			"standard of review",
		},
	},
	{
		Type:      entity.DocumentTypeEmail,
		Threshold: 0.20,
		Keywords: []string{
			"subject:",
			"dear",
			"regards",
			"sincerely",
			"sent from",
		},
	},
	{
		Type:      entity.DocumentTypeMemo,
		Threshold: 0.25,
		Keywords: []string{
			"memorandum",
			"to:",
			"from:",
			"re:",
			"date:",
			"cc:",
			"privileged and confidential",
			"executive summary",
		},
	},
}

// FileNameRule maps filename substrings to a document type. Independent of
// body-text detection; evaluated in order, first hit wins.
type FileNameRule struct {
	Substrings []string
	Type       entity.DocumentType
}

var FileNameRules = []FileNameRule{
	{Substrings: []string{"contract", "nda", "agreement", "msa", "sow"}, Type: entity.DocumentTypeContract},
	{Substrings: []string{"brief", "motion"}, Type: entity.DocumentTypeBrief},
	{Substrings: []string{"complaint", "pleading", "answer_"}, Type: entity.DocumentTypePleading},
	{Substrings: []string{"memo"}, Type: entity.DocumentTypeMemo},
	{Substrings: []string{"letter"}, Type: entity.DocumentTypeLetter},
	{Substrings: []string{".eml", "mail"}, Type: entity.DocumentTypeEmail},
	{Substrings: []string{".xlsx", ".xls", ".csv", ".numbers"}, Type: entity.DocumentTypeSpreadsheet},
	{Substrings: []string{".pptx", ".ppt", ".key"}, Type: entity.DocumentTypePresentation},
	{Substrings: []string{".pdf"}, Type: entity.DocumentTypePdf},
}

// LegalTerms is the fixed reference table matched by substring containment.
var LegalTerms = []entity.LegalTerm{
	{Term: "force majeure", Description: "Excuses performance on extraordinary events", Category: "contract"},
	{Term: "indemnification", Description: "Obligation to compensate the other party's losses", Category: "contract"},
	{Term: "governing law", Description: "Which jurisdiction's law applies", Category: "contract"},
	{Term: "severability", Description: "Invalid clauses do not void the whole agreement", Category: "contract"},
	{Term: "consideration", Description: "Value exchanged to form a binding contract", Category: "contract"},
	{Term: "arbitration", Description: "Dispute resolution outside the courts", Category: "dispute"},
	{Term: "jurisdiction", Description: "Authority of a court to hear a matter", Category: "dispute"},
	{Term: "estoppel", Description: "Bar against contradicting a prior position", Category: "dispute"},
	{Term: "fiduciary duty", Description: "Duty to act in another party's best interest", Category: "corporate"},
	{Term: "due diligence", Description: "Pre-transaction investigation of facts", Category: "corporate"},
	{Term: "intellectual property", Description: "Ownership of intangible creations", Category: "ip"},
	{Term: "work for hire", Description: "IP created for a hiring party belongs to it", Category: "ip"},
	{Term: "warranty", Description: "Assurance about a fact or condition", Category: "contract"},
	{Term: "pro rata", Description: "Proportional allocation", Category: "finance"},
	{Term: "liquidated damages", Description: "Pre-agreed damages amount", Category: "contract"},
}

// HighRiskPhrases are checked before MediumRiskPhrases; both tables may match
// the same text and the result is the union.
var HighRiskPhrases = []entity.RiskIndicator{
	{Phrase: "unlimited liability", Description: "No cap on liability exposure", Severity: entity.SeverityHigh},
	{Phrase: "personal guarantee", Description: "Individual assets on the hook", Severity: entity.SeverityHigh},
	{Phrase: "indemnify and hold harmless", Description: "One-sided loss shifting", Severity: entity.SeverityHigh},
	{Phrase: "waive all claims", Description: "Broad waiver of legal remedies", Severity: entity.SeverityHigh},
	{Phrase: "sole discretion", Description: "Unilateral decision power for the counterparty", Severity: entity.SeverityHigh},
	{Phrase: "irrevocable", Description: "Cannot be undone once granted", Severity: entity.SeverityHigh},
	{Phrase: "non-compete", Description: "Restriction on future business activity", Severity: entity.SeverityHigh},
}

var MediumRiskPhrases = []entity.RiskIndicator{
	{Phrase: "automatic renewal", Description: "Term renews unless actively cancelled", Severity: entity.SeverityMedium},
	{Phrase: "auto-renew", Description: "Term renews unless actively cancelled", Severity: entity.SeverityMedium},
	{Phrase: "binding arbitration", Description: "Waives the right to court proceedings", Severity: entity.SeverityMedium},
	{Phrase: "exclusivity", Description: "Locks out alternative counterparties", Severity: entity.SeverityMedium},
	{Phrase: "termination for convenience", Description: "Counterparty may exit without cause", Severity: entity.SeverityMedium},
	{Phrase: "late fee", Description: "Penalty accrues on missed payments", Severity: entity.SeverityMedium},
	{Phrase: "assignment without consent", Description: "Obligations may be transferred freely", Severity: entity.SeverityMedium},
}

// Lexicons for the entity tagger. Organization suffixes and honorifics are
// compared against lowercased tokens; the location gazetteer against
// lowercased spans.
var (
	OrganizationSuffixes = []string{
		"llc", "inc", "inc.", "corp", "corp.", "corporation", "llp",
		"ltd", "ltd.", "co.", "company", "partners", "associates", "group",
	}

	PersonHonorifics = []string{
		"mr.", "ms.", "mrs.", "dr.", "judge", "justice", "attorney", "hon.",
	}

	LocationGazetteer = []string{
		"new york", "california", "texas", "delaware", "london",
		"washington", "san francisco", "chicago", "boston", "los angeles",
	}
)

// Quick-summary tuning.
const (
	SummaryMinSentenceLen  = 20
	SummaryDefaultMaxCount = 3
	SummaryFallbackPrefix  = 160
)
