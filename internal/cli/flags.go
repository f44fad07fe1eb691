package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// sessionFlag registers --session/-s on fs.
func sessionFlag(fs *pflag.FlagSet, p *string, usage string) {
	fs.StringVarP(p, "session", "s", "", usage)
}

// normalizeFlagName accepts snake_case spellings of flags.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
