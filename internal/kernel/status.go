// Package kernel covers the three files the kxo module exposes to userspace:
// the character device carrying board updates, the sysfs attribute used to
// signal display and termination intent back to the module, and the initstate
// file gating session startup.
package kernel

import (
	"fmt"
	"os"
	"strings"

	"github.com/rocketscienceinc/kxo-monitor/internal/apperror"
)

const liveState = "live"

// CheckStatus reads the module's initstate file and requires it to report
// "live". Anything else, including a missing file, means the module is not
// loaded and the session must not start.
func CheckStatus(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrModuleNotLive, err)
	}

	state := strings.TrimRight(string(data), "\n")
	if state != liveState {
		return fmt.Errorf("%w: initstate is %q", apperror.ErrModuleNotLive, state)
	}

	return nil
}
