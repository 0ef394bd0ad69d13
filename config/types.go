package config

type Config struct {
	FPS           int     `json:"fps"`
	FPSStep       int     `json:"fps_step"`
	WarnThreshold float64 `json:"warn_threshold"`
	CritThreshold float64 `json:"crit_threshold"`
	Source        string  `json:"source"`
	LogLevel      string  `json:"log_level"`
}
