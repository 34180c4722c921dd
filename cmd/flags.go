package cmd

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/vishav1771/signac-flow/internal/utils"
)

// walltimeValue is a pflag.Value accepting hours ("1", "0.5"), Go
// durations ("90m") and HH:MM[:SS]. Unset means nil.
type walltimeValue struct {
	d *time.Duration
}

var _ pflag.Value = (*walltimeValue)(nil)

func (w *walltimeValue) String() string {
	if w.d == nil {
		return ""
	}
	return w.d.String()
}

func (w *walltimeValue) Set(s string) error {
	d, err := utils.ParseWalltime(s)
	if err != nil {
		return err
	}
	w.d = &d
	return nil
}

func (w *walltimeValue) Type() string { return "walltime" }

// Duration returns the parsed walltime, or nil when the flag was not given.
func (w *walltimeValue) Duration() *time.Duration { return w.d }
