package ui

import (
	"fmt"
	"strings"
	"time"
)

// FormatUptime renders d as "3d04h", "4h05m" or "05m12s".
func FormatUptime(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}

	days := total / 86400
	h := (total % 86400) / 3600
	m := (total % 3600) / 60
	s := total % 60

	if days > 0 {
		return fmt.Sprintf("%dd%02dh", days, h)
	}
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%02dm%02ds", m, s)
}

// padToWidth truncates or right-pads text to exactly width runes.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(text)
	if len(r) >= width {
		return string(r[:width])
	}
	return text + strings.Repeat(" ", width-len(r))
}
