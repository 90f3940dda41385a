package constant

import "ai-legalassist-core/internal/entity"

// RiskAnalysisToolId is force-inserted at the front of suggestions whenever
// the current context carries any risk indicator.
const RiskAnalysisToolId = "contract_risk_analyzer"

// BuiltinTools is the offline fallback catalog. The catalog service prefers
// the backend's tool list when one is cached or reachable.
var BuiltinTools = []entity.Tool{
	{Id: "contract_risk_analyzer", Name: "Contract Risk Analyzer", Description: "Flags risky clauses and one-sided terms", Category: entity.ToolCategoryContractAnalysis, PromptStub: "Analyze the following contract text for risk:"},
	{Id: "clause_extractor", Name: "Clause Extractor", Description: "Pulls out key clauses by topic", Category: entity.ToolCategoryContractAnalysis, PromptStub: "Extract the key clauses from:"},
	{Id: "term_sheet_summarizer", Name: "Term Sheet Summarizer", Description: "Condenses deal terms into a term sheet", Category: entity.ToolCategoryContractAnalysis, PromptStub: "Summarize the deal terms in:"},
	{Id: "citation_checker", Name: "Citation Checker", Description: "Verifies citation format and completeness", Category: entity.ToolCategoryLitigation, PromptStub: "Check the citations in:"},
	{Id: "argument_outliner", Name: "Argument Outliner", Description: "Outlines the argument structure", Category: entity.ToolCategoryLitigation, PromptStub: "Outline the arguments in:"},
	{Id: "brief_summarizer", Name: "Brief Summarizer", Description: "Summarizes a brief's holdings and reasoning", Category: entity.ToolCategoryLitigation, PromptStub: "Summarize this brief:"},
	{Id: "deadline_extractor", Name: "Deadline Extractor", Description: "Finds dates and response deadlines", Category: entity.ToolCategoryLitigation, PromptStub: "List every deadline in:"},
	{Id: "email_tone_reviewer", Name: "Email Tone Reviewer", Description: "Reviews tone and professionalism", Category: entity.ToolCategoryCorrespondence, PromptStub: "Review the tone of this email:"},
	{Id: "reply_drafter", Name: "Reply Drafter", Description: "Drafts a reply in your voice", Category: entity.ToolCategoryCorrespondence, PromptStub: "Draft a reply to:"},
	{Id: "tone_reviewer", Name: "Letter Tone Reviewer", Description: "Reviews formality and clarity", Category: entity.ToolCategoryCorrespondence, PromptStub: "Review the tone of this letter:"},
	{Id: "memo_polisher", Name: "Memo Polisher", Description: "Tightens structure and headings", Category: entity.ToolCategoryDrafting, PromptStub: "Polish this memo:"},
	{Id: "quick_summarizer", Name: "Quick Summarizer", Description: "Three-sentence summary of any text", Category: entity.ToolCategoryGeneral, PromptStub: "Summarize briefly:"},
	{Id: "document_summarizer", Name: "Document Summarizer", Description: "Structured summary of a full document", Category: entity.ToolCategoryResearch, PromptStub: "Summarize this document:"},
	{Id: "figure_sanity_checker", Name: "Figure Sanity Checker", Description: "Cross-checks totals and computed cells", Category: entity.ToolCategoryGeneral, PromptStub: "Sanity-check the figures in:"},
	{Id: "slide_summarizer", Name: "Slide Summarizer", Description: "Summarizes deck content per slide", Category: entity.ToolCategoryGeneral, PromptStub: "Summarize this deck:"},
	{Id: "precedent_finder", Name: "Precedent Finder", Description: "Suggests relevant precedent to research", Category: entity.ToolCategoryResearch, PromptStub: "Suggest precedent relevant to:"},
}

// SuggestedToolsByDocumentType is static per-variant data, not derived state.
var SuggestedToolsByDocumentType = map[entity.DocumentType][]string{
	entity.DocumentTypeContract:     {"contract_risk_analyzer", "clause_extractor", "term_sheet_summarizer"},
	entity.DocumentTypeBrief:        {"citation_checker", "argument_outliner", "brief_summarizer"},
	entity.DocumentTypeMotion:       {"citation_checker", "argument_outliner"},
	entity.DocumentTypePleading:     {"citation_checker", "deadline_extractor"},
	entity.DocumentTypeMemo:         {"memo_polisher", "quick_summarizer"},
	entity.DocumentTypeLetter:       {"tone_reviewer", "quick_summarizer"},
	entity.DocumentTypeEmail:        {"email_tone_reviewer", "reply_drafter", "quick_summarizer"},
	entity.DocumentTypeSpreadsheet:  {"figure_sanity_checker"},
	entity.DocumentTypePresentation: {"slide_summarizer"},
	entity.DocumentTypePdf:          {"document_summarizer", "clause_extractor"},
	entity.DocumentTypeUnknown:      {"quick_summarizer"},
}

// QuickActionsByDocumentType is the static quick-action table per variant.
// The context engine prepends a risk-check action when risk indicators are
// present and caps the list.
var QuickActionsByDocumentType = map[entity.DocumentType][]entity.QuickAction{
	entity.DocumentTypeContract: {
		{Label: "Summarize Terms", Icon: "doc.text.magnifyingglass", ToolId: "term_sheet_summarizer"},
		{Label: "Extract Clauses", Icon: "list.bullet.rectangle", ToolId: "clause_extractor"},
	},
	entity.DocumentTypeBrief: {
		{Label: "Check Citations", Icon: "checkmark.seal", ToolId: "citation_checker"},
		{Label: "Outline Arguments", Icon: "list.number", ToolId: "argument_outliner"},
	},
	entity.DocumentTypeMotion: {
		{Label: "Check Citations", Icon: "checkmark.seal", ToolId: "citation_checker"},
	},
	entity.DocumentTypePleading: {
		{Label: "Find Deadlines", Icon: "calendar.badge.clock", ToolId: "deadline_extractor"},
	},
	entity.DocumentTypeMemo: {
		{Label: "Polish Memo", Icon: "wand.and.stars", ToolId: "memo_polisher"},
	},
	entity.DocumentTypeLetter: {
		{Label: "Review Tone", Icon: "text.bubble", ToolId: "tone_reviewer"},
	},
	entity.DocumentTypeEmail: {
		{Label: "Review Tone", Icon: "text.bubble", ToolId: "email_tone_reviewer"},
		{Label: "Draft Reply", Icon: "arrowshape.turn.up.left", ToolId: "reply_drafter"},
	},
	entity.DocumentTypePdf: {
		{Label: "Summarize", Icon: "doc.text.magnifyingglass", ToolId: "document_summarizer"},
	},
	entity.DocumentTypeUnknown: {
		{Label: "Quick Summary", Icon: "doc.text.magnifyingglass", ToolId: "quick_summarizer"},
	},
}

// RiskQuickAction is prepended when the context carries risk indicators.
var RiskQuickAction = entity.QuickAction{
	Label: "Check Risks", Icon: "exclamationmark.shield", ToolId: RiskAnalysisToolId,
}

// AppCategoryByBundleId classifies known applications. Unlisted bundles fall
// back to AppCategoryUnknown.
var AppCategoryByBundleId = map[string]entity.AppCategory{
	"com.microsoft.Word":       entity.AppCategoryEditor,
	"com.apple.TextEdit":       entity.AppCategoryEditor,
	"com.apple.iWork.Pages":    entity.AppCategoryEditor,
	"com.apple.Preview":        entity.AppCategoryViewer,
	"com.adobe.Acrobat.Pro":    entity.AppCategoryViewer,
	"com.apple.mail":           entity.AppCategoryMail,
	"com.microsoft.Outlook":    entity.AppCategoryMail,
	"com.apple.Safari":         entity.AppCategoryBrowser,
	"com.google.Chrome":        entity.AppCategoryBrowser,
	"org.mozilla.firefox":      entity.AppCategoryBrowser,
	"com.microsoft.Excel":      entity.AppCategorySpreadsheet,
	"com.apple.iWork.Numbers":  entity.AppCategorySpreadsheet,
	"com.microsoft.Powerpoint": entity.AppCategoryPresentation,
	"com.apple.iWork.Keynote":  entity.AppCategoryPresentation,
	"com.apple.Terminal":       entity.AppCategoryTerminal,
	"com.googlecode.iterm2":    entity.AppCategoryTerminal,
}

// ToolCategoriesByAppCategory ranks tool categories per app classification.
// The context engine takes up to 2 tools from each of the top-2 entries.
var ToolCategoriesByAppCategory = map[entity.AppCategory][]entity.ToolCategory{
	entity.AppCategoryEditor:       {entity.ToolCategoryDrafting, entity.ToolCategoryContractAnalysis},
	entity.AppCategoryViewer:       {entity.ToolCategoryResearch, entity.ToolCategoryGeneral},
	entity.AppCategoryMail:         {entity.ToolCategoryCorrespondence, entity.ToolCategoryGeneral},
	entity.AppCategoryBrowser:      {entity.ToolCategoryResearch, entity.ToolCategoryGeneral},
	entity.AppCategorySpreadsheet:  {entity.ToolCategoryGeneral, entity.ToolCategoryResearch},
	entity.AppCategoryPresentation: {entity.ToolCategoryDrafting, entity.ToolCategoryGeneral},
	entity.AppCategoryTerminal:     {entity.ToolCategoryGeneral},
	entity.AppCategoryUnknown:      {entity.ToolCategoryGeneral},
}
