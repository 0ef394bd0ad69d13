package proc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/targodan/go-errors"
)

func ReadLoadavg() (l1, l5, l15 float64, err error) {
	f, err := os.Open(filepath.Join(Root, "loadavg"))
	if err != nil {
		return 0, 0, 0, err
	}
	defer f.Close()

	return ParseLoadavg(f)
}

func ParseLoadavg(r io.Reader) (l1, l5, l15 float64, err error) {
	if _, err = fmt.Fscan(r, &l1, &l5, &l15); err != nil {
		return 0, 0, 0, errors.Errorf("could not parse loadavg, reason: %w", err)
	}
	return l1, l5, l15, nil
}
