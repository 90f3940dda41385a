package platform

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"ai-legalassist-core/internal/entity"
)

// DarwinAccessor shells out to osascript/pbpaste for application, window,
// and clipboard state. Selection reads go through the System Events
// accessibility tree, which requires the Accessibility permission.
type DarwinAccessor struct{}

func NewDarwinAccessor() *DarwinAccessor {
	return &DarwinAccessor{}
}

var _ SystemAccessor = &DarwinAccessor{}
var _ ClipboardAccessor = &DarwinAccessor{}

func (a *DarwinAccessor) PermissionGranted() bool {
	// System Events refuses accessibility queries without the permission;
	// a cheap probe tells us the state without prompting.
	out, err := runOsascript(`tell application "System Events" to get name of first process whose frontmost is true`)
	return err == nil && out != ""
}

func (a *DarwinAccessor) RequestPermission() bool {
	// Touching the accessibility API from an unauthorized process makes the
	// OS show its grant prompt; we just re-probe afterwards.
	_, _ = runOsascript(`tell application "System Events" to get name of every process`)
	return a.PermissionGranted()
}

func (a *DarwinAccessor) FrontmostApplication() (*entity.AppIdentity, error) {
	out, err := runOsascript(`tell application "System Events" to tell (first process whose frontmost is true) to return name & linefeed & bundle identifier`)
	if err != nil {
		return nil, err
	}
	lines := strings.SplitN(out, "\n", 2)
	app := &entity.AppIdentity{Name: strings.TrimSpace(lines[0])}
	if len(lines) > 1 {
		app.BundleId = strings.TrimSpace(lines[1])
	}
	if app.Name == "" {
		return nil, nil
	}
	return app, nil
}

func (a *DarwinAccessor) FrontmostWindow() (*entity.WindowInfo, error) {
	out, err := runOsascript(`tell application "System Events" to tell (first process whose frontmost is true)
	set w to front window
	return (name of w) & linefeed & (value of attribute "AXDocument" of w) & linefeed & (position of w as text) & linefeed & (size of w as text)
end tell`)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(out, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, nil
	}
	info := &entity.WindowInfo{Title: strings.TrimSpace(lines[0])}
	if len(lines) > 1 {
		info.DocumentPath = strings.TrimPrefix(strings.TrimSpace(lines[1]), "file://")
	}
	if len(lines) > 2 {
		info.X, info.Y = parsePair(lines[2])
	}
	if len(lines) > 3 {
		info.Width, info.Height = parsePair(lines[3])
	}
	return info, nil
}

func (a *DarwinAccessor) SelectedText() (string, error) {
	out, err := runOsascript(`tell application "System Events" to tell (first process whose frontmost is true)
	return value of attribute "AXSelectedText" of (value of attribute "AXFocusedUIElement")
end tell`)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (a *DarwinAccessor) FullText() (string, error) {
	out, err := runOsascript(`tell application "System Events" to tell (first process whose frontmost is true)
	return value of (value of attribute "AXFocusedUIElement")
end tell`)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (a *DarwinAccessor) ChangeCount() (int, error) {
	// NSPasteboard's changeCount via a one-line ObjC bridge script.
	out, err := exec.Command("osascript", "-l", "JavaScript", "-e",
		"ObjC.import('AppKit'); $.NSPasteboard.generalPasteboard.changeCount").Output()
	if err != nil {
		return 0, fmt.Errorf("clipboard change count: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("clipboard change count parse: %w", err)
	}
	return n, nil
}

func (a *DarwinAccessor) Read() (*entity.ClipboardItem, error) {
	count, err := a.ChangeCount()
	if err != nil {
		return nil, err
	}
	out, err := exec.Command("pbpaste").Output()
	if err != nil {
		return nil, fmt.Errorf("pbpaste: %w", err)
	}
	text := string(out)
	item := &entity.ClipboardItem{
		ChangeCount: count,
		CapturedAt:  time.Now(),
	}
	switch {
	case text == "":
		// pbpaste yields nothing for images and other non-text data.
		item.ContentType = entity.ClipboardContentImage
	case looksLikeFileList(text):
		item.ContentType = entity.ClipboardContentFilePaths
		item.FilePaths = strings.Split(strings.TrimSpace(text), "\n")
	case a.hasRichText():
		// Styled content from word processors carries an RTF flavor
		// alongside the plain rendering pbpaste gives us.
		item.ContentType = entity.ClipboardContentRichText
		item.Text = text
	default:
		item.ContentType = entity.ClipboardContentText
		item.Text = text
	}
	return item, nil
}

func (a *DarwinAccessor) hasRichText() bool {
	out, err := exec.Command("pbpaste", "-Prefer", "rtf").Output()
	return err == nil && bytes.HasPrefix(out, []byte(`{\rtf`))
}

func runOsascript(script string) (string, error) {
	out, err := exec.Command("osascript", "-e", script).Output()
	if err != nil {
		return "", fmt.Errorf("osascript: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

func parsePair(s string) (int, int) {
	parts := strings.SplitN(strings.TrimSpace(s), ", ", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	a, _ := strconv.Atoi(parts[0])
	b, _ := strconv.Atoi(parts[1])
	return a, b
}

func looksLikeFileList(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	for _, line := range strings.Split(trimmed, "\n") {
		if !strings.HasPrefix(line, "/") {
			return false
		}
	}
	return true
}
