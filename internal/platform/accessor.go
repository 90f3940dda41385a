// Package platform is the thin OS boundary: raw application, window,
// selection, and clipboard access. Everything above it (timeouts, permission
// policy, debouncing) lives in the service layer so this package stays a
// direct wrapper around OS calls.
package platform

import "ai-legalassist-core/internal/entity"

// SystemAccessor reads the frontmost application, its active window, and the
// current text selection. Calls may block for unbounded time if the target
// application is unresponsive; the observer service wraps every call with a
// timeout.
type SystemAccessor interface {
	// PermissionGranted reports whether the OS accessibility permission has
	// been granted. It must never prompt.
	PermissionGranted() bool
	// RequestPermission triggers the OS permission prompt and reports the
	// resulting state. Only called on an explicit user affordance.
	RequestPermission() bool

	FrontmostApplication() (*entity.AppIdentity, error)
	FrontmostWindow() (*entity.WindowInfo, error)
	SelectedText() (string, error)
	FullText() (string, error)
}

// ClipboardAccessor reads the system clipboard. The clipboard is an OS-global
// shared resource with no locking available; callers compare ChangeCount
// between polls instead of assuming exclusive access.
type ClipboardAccessor interface {
	// ChangeCount increments every time the clipboard content changes.
	ChangeCount() (int, error)
	// Read returns the current clipboard content.
	Read() (*entity.ClipboardItem, error)
}
