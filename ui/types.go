package ui

import (
	"time"

	"electrorustogram/model"
)

// Messages

type tickMsg time.Time

type sysInfoMsg SystemInfo

type statusMsg struct {
	text    string
	isError bool
}

// ConfigMsg carries reloaded settings into the running loop.
type ConfigMsg struct {
	Thresholds model.Thresholds
	FPSStep    int
}

// LoadSource is anything that can report the current CPU load.
type LoadSource interface {
	Sample() (model.LoadSample, error)
}

// SystemInfo is shown in the header when the platform provides it.
type SystemInfo struct {
	Load1     float64
	HasLoad   bool
	Uptime    time.Duration
	HasUptime bool
}
