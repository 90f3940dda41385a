package platform

import "ai-legalassist-core/internal/entity"

// NoopAccessor is the accessor used on unsupported platforms and in tests:
// no permission, no data, never an error that reaches callers as anything
// but absence.
type NoopAccessor struct{}

func NewNoopAccessor() *NoopAccessor {
	return &NoopAccessor{}
}

var _ SystemAccessor = &NoopAccessor{}
var _ ClipboardAccessor = &NoopAccessor{}

func (a *NoopAccessor) PermissionGranted() bool { return false }
func (a *NoopAccessor) RequestPermission() bool { return false }

func (a *NoopAccessor) FrontmostApplication() (*entity.AppIdentity, error) { return nil, nil }
func (a *NoopAccessor) FrontmostWindow() (*entity.WindowInfo, error)       { return nil, nil }
func (a *NoopAccessor) SelectedText() (string, error)                      { return "", nil }
func (a *NoopAccessor) FullText() (string, error)                          { return "", nil }

func (a *NoopAccessor) ChangeCount() (int, error)            { return 0, nil }
func (a *NoopAccessor) Read() (*entity.ClipboardItem, error) { return nil, nil }
