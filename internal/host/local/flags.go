package local

import (
	"context"
	"strings"

	"github.com/visorhq/visor/host/internal/shared/types"
)

// Flags resolves CLI flags from the captured launch arguments
type Flags struct {
	args []string
}

// NewFlags creates a flag source over the process launch arguments
func NewFlags(args []string) *Flags {
	return &Flags{args: append([]string(nil), args...)}
}

// CLIFlags implements host.FlagSource. Arguments of the form --key=value
// or --key become flags; everything else is a positional argument.
func (f *Flags) CLIFlags(ctx context.Context) (types.CLIFlags, error) {
	out := types.CLIFlags{Flags: make(map[string]string)}
	for _, arg := range f.args {
		if !strings.HasPrefix(arg, "--") {
			out.Args = append(out.Args, arg)
			continue
		}
		trimmed := strings.TrimPrefix(arg, "--")
		if key, value, found := strings.Cut(trimmed, "="); found {
			out.Flags[key] = value
		} else {
			out.Flags[trimmed] = "true"
		}
	}
	return out, nil
}
