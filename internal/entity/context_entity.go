package entity

import (
	"time"
)

// AppCategory classifies the frontmost application by what the user is
// likely doing in it.
type AppCategory string

const (
	AppCategoryEditor       AppCategory = "editor"
	AppCategoryViewer       AppCategory = "viewer"
	AppCategoryMail         AppCategory = "mail"
	AppCategoryBrowser      AppCategory = "browser"
	AppCategorySpreadsheet  AppCategory = "spreadsheet"
	AppCategoryPresentation AppCategory = "presentation"
	AppCategoryTerminal     AppCategory = "terminal"
	AppCategoryUnknown      AppCategory = "unknown"
)

// AppIdentity identifies the frontmost application.
type AppIdentity struct {
	BundleId string
	Name     string
}

// WindowInfo describes the active window of the frontmost application.
type WindowInfo struct {
	Title        string
	DocumentPath string
	X            int
	Y            int
	Width        int
	Height       int
}

// TextSelection is a snapshot of the user's current text selection.
// Immutable once created; superseded by the next selection event.
type TextSelection struct {
	Content    string
	App        *AppIdentity
	Window     *WindowInfo
	WordCount  int
	CapturedAt time.Time
}

// EnrichedContext is the point-in-time snapshot of what the user is working
// on. It is rebuilt on every detection tick and superseded, never mutated.
// Only the current snapshot is retained.
type EnrichedContext struct {
	App            *AppIdentity
	Window         *WindowInfo
	AppCategory    AppCategory
	DocumentType   DocumentType
	Selection      *TextSelection
	LegalTerms     []LegalTerm
	RiskIndicators []RiskIndicator
	Entities       []ExtractedEntity
	Confidence     float64
	CapturedAt     time.Time
}

// SelectionLength returns the character length of the current selection,
// or 0 when nothing is selected.
func (c *EnrichedContext) SelectionLength() int {
	if c == nil || c.Selection == nil {
		return 0
	}
	return len(c.Selection.Content)
}

// HasRisk reports whether any risk indicator was detected in the snapshot.
func (c *EnrichedContext) HasRisk() bool {
	return c != nil && len(c.RiskIndicators) > 0
}
