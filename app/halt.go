package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"macromedia/hal"
)

// haltRepeat is how often a fault is re-logged while halted, so that a USB
// serial console attached after the fault still sees it.
const haltRepeat = 2 * time.Second

// faultLines formats a fatal error or recovered panic value and its stack.
func faultLines(v any, stack []byte) []string {
	lines := []string{fmt.Sprintf("macromedia: halted: %v", v)}
	for _, line := range strings.Split(string(stack), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// halt logs lines forever. It never returns.
func halt(l hal.Logger, lines []string) {
	for {
		for _, line := range lines {
			hal.Logf(l, "%s", line)
		}
		time.Sleep(haltRepeat)
	}
}

func recoverHalt(l hal.Logger) {
	if r := recover(); r != nil {
		halt(l, faultLines(r, debug.Stack()))
	}
}
