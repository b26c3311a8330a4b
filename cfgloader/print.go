package cfgloader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rise-and-shine/agenda/mask"
)

// printConfig writes the loaded config with `mask:"true"` fields hidden.
// The application logger is not configured yet at this point, hence slog.
func printConfig(config any) {
	var b strings.Builder
	flat := mask.StructToOrdMap(config)
	for p := flat.Oldest(); p != nil; p = p.Next() {
		fmt.Fprintf(&b, "  %s: %v\n", p.Key, p.Value)
	}
	slog.Info("Loaded config:\n" + b.String())
}
