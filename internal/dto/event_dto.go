package dto

import (
	"time"

	"ai-legalassist-core/internal/entity"
)

// ContextChangedEvent is published on the bus once per significant context
// change, in order.
type ContextChangedEvent struct {
	AppName         string               `json:"app_name"`
	AppBundleId     string               `json:"app_bundle_id"`
	WindowTitle     string               `json:"window_title"`
	DocumentType    entity.DocumentType  `json:"document_type"`
	SelectionLength int                  `json:"selection_length"`
	RiskCount       int                  `json:"risk_count"`
	Confidence      float64              `json:"confidence"`
	SuggestedTools  []string             `json:"suggested_tools"`
	QuickActions    []entity.QuickAction `json:"quick_actions"`
	CapturedAt      time.Time            `json:"captured_at"`
}

// NetworkStatusEvent is published on every online/offline transition.
type NetworkStatusEvent struct {
	Online    bool      `json:"online"`
	ChangedAt time.Time `json:"changed_at"`
}

// ClipboardChangedEvent is published when fresh content of any type lands
// on the clipboard. Duplicates produce no event.
type ClipboardChangedEvent struct {
	ContentType entity.ClipboardContentType `json:"content_type"`
	Preview     string                      `json:"preview"`
	CapturedAt  time.Time                   `json:"captured_at"`
}
