package platform

import (
	"time"

	"github.com/temoto/ghost/log2"
	"golang.org/x/sys/unix"
)

// Terminal returns function that puts the board into terminal state.
// mode: "poweroff" (default) or "halt". Only reset or power button brings it back.
func Terminal(log *log2.Log, mode string) func() {
	cmd := unix.LINUX_REBOOT_CMD_POWER_OFF
	if mode == SleepHalt {
		cmd = unix.LINUX_REBOOT_CMD_HALT
	}
	return func() {
		unix.Sync()
		if err := unix.Reboot(cmd); err != nil {
			log.Errorf("platform terminal mode=%s reboot syscall err=%v", mode, err)
		}
		hang()
	}
}

// hang keeps calling goroutine blocked forever.
// Timer sleep instead of empty select avoids runtime deadlock detector.
func hang() {
	for {
		time.Sleep(time.Hour)
	}
}
