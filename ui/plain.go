package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"electrorustogram/model"
)

var plainBandColors = map[model.ColorBand]*color.Color{
	model.Green:  color.New(color.FgGreen),
	model.Yellow: color.New(color.FgYellow),
	model.Red:    color.New(color.FgRed, color.Bold),
}

// PrintSample writes a one-line load report, colored by band when the
// output supports it.
func PrintSample(w io.Writer, load model.LoadSample, th model.Thresholds, info SystemInfo) error {
	band := th.Classify(load)
	c, ok := plainBandColors[band]
	if !ok {
		c = color.New(color.Reset)
	}

	line := fmt.Sprintf("cpu %s %s", c.Sprintf("%5.1f%%", load.Percent()), c.Sprint(band))
	if info.HasLoad {
		line += fmt.Sprintf("  avg %.2f", info.Load1)
	}
	if info.HasUptime {
		line += "  up " + FormatUptime(info.Uptime)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
