//go:build !linux

package platform

import (
	"time"

	"github.com/temoto/ghost/log2"
)

func Terminal(log *log2.Log, mode string) func() {
	return func() {
		log.Errorf("platform terminal mode=%s not supported on this OS, hanging", mode)
		hang()
	}
}

func hang() {
	for {
		time.Sleep(time.Hour)
	}
}
