package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// desktopDismissMillis is how long the native notification stays up.
const desktopDismissMillis = 5000

// DesktopNotifier raises a native OS notification. Implementations must
// tolerate the capability being absent.
type DesktopNotifier interface {
	Send(title, body string) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(title, body string) error { return nil }

// ExecDesktopNotifier shells out to the platform notifier.
type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send",
			"-t", fmt.Sprintf("%d", desktopDismissMillis), title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`,
			escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
