package entity

// ToolCategory groups tools by the workflow they support.
type ToolCategory string

const (
	ToolCategoryContractAnalysis ToolCategory = "contract_analysis"
	ToolCategoryLitigation       ToolCategory = "litigation"
	ToolCategoryCorrespondence   ToolCategory = "correspondence"
	ToolCategoryResearch         ToolCategory = "research"
	ToolCategoryDrafting         ToolCategory = "drafting"
	ToolCategoryGeneral          ToolCategory = "general"
)

// Tool is catalog metadata for one analysis tool. Identity is the stable
// string id (e.g. "contract_risk_analyzer").
type Tool struct {
	Id          string
	Name        string
	Description string
	Category    ToolCategory
	PromptStub  string
	IsFavorite  bool
}

// QuickAction is a one-tap shortcut derived from the current context.
type QuickAction struct {
	Label  string
	Icon   string
	ToolId string
}
