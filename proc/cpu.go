package proc

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/targodan/go-errors"
)

// Root is the procfs mount point.
var Root = "/proc"

// CPUTimes is the aggregate "cpu" line of /proc/stat, in clock ticks.
type CPUTimes struct {
	Idle  uint64 // idle + iowait
	Total uint64
}

func ReadCPUTimes() (CPUTimes, error) {
	f, err := os.Open(filepath.Join(Root, "stat"))
	if err != nil {
		return CPUTimes{}, err
	}
	defer f.Close()

	return ParseCPUTimes(f)
}

func ParseCPUTimes(r io.Reader) (CPUTimes, error) {
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return CPUTimes{}, errors.Errorf("could not read cpu line, reason: %w", err)
	}
	fields := strings.Fields(line)

	if len(fields) < 5 || fields[0] != "cpu" {
		return CPUTimes{}, errors.Newf("unexpected cpu line %q", strings.TrimSpace(line))
	}

	var t CPUTimes
	for i, tok := range fields[1:] {
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return CPUTimes{}, errors.Errorf("invalid cpu field %d, reason: %w", i+1, err)
		}
		// guest and guest_nice are already part of user and nice
		if i >= 8 {
			continue
		}
		t.Total += v
		// idle (4th) and iowait (5th)
		if i == 3 || i == 4 {
			t.Idle += v
		}
	}
	return t, nil
}

// Busy returns the busy fraction between two readings, or false when no
// time has elapsed.
func (t CPUTimes) Busy(prev CPUTimes) (float64, bool) {
	if t.Total <= prev.Total {
		return 0, false
	}
	total := t.Total - prev.Total
	idle := uint64(0)
	if t.Idle > prev.Idle {
		idle = t.Idle - prev.Idle
	}
	if idle > total {
		idle = total
	}
	return float64(total-idle) / float64(total), true
}
