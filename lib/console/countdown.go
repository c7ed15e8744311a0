// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"fmt"
	"strings"
	"time"
)

const countdownWidth = 30

// Countdown renders the settle-wait progress bar in place, one frame
// per second. The final frame (zero remaining) terminates the line.
func (c *Console) Countdown(remaining, total time.Duration) {
	elapsed := total - remaining
	filled := 0
	if total > 0 {
		filled = int(int64(countdownWidth) * int64(elapsed) / int64(total))
	}
	if filled > countdownWidth {
		filled = countdownWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", countdownWidth-filled)

	frame := fmt.Sprintf("\r  settling [%s] %2ds", bar, int(remaining.Seconds()))
	if c.color {
		frame = fmt.Sprintf("\r  settling [%s] %2ds", c.render(dimStyle, bar), int(remaining.Seconds()))
	}
	fmt.Fprint(c.out, frame)
	if remaining <= 0 {
		fmt.Fprintln(c.out)
		if c.log != nil {
			fmt.Fprintf(c.log, "settle wait complete (%s)\n", total)
		}
	}
}
