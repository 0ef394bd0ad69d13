package proc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/targodan/go-errors"
)

func ReadUptime() (time.Duration, error) {
	f, err := os.Open(filepath.Join(Root, "uptime"))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return ParseUptime(f)
}

func ParseUptime(r io.Reader) (time.Duration, error) {
	var up float64
	if _, err := fmt.Fscan(r, &up); err != nil {
		return 0, errors.Errorf("could not parse uptime, reason: %w", err)
	}
	return time.Duration(up * float64(time.Second)), nil
}
