package entity

import "time"

// ClipboardContentType classifies what kind of data is on the clipboard.
type ClipboardContentType string

const (
	ClipboardContentText      ClipboardContentType = "text"
	ClipboardContentRichText  ClipboardContentType = "rich_text"
	ClipboardContentFilePaths ClipboardContentType = "file_paths"
	ClipboardContentImage     ClipboardContentType = "image"
)

// ClipboardItem is one observed clipboard state.
type ClipboardItem struct {
	ContentType ClipboardContentType
	Text        string
	FilePaths   []string
	ChangeCount int
	CapturedAt  time.Time
}
