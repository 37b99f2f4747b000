package interp

import (
	"os"

	"github.com/dinothaurs/cs131interpretor/internal/interp/host"
)

// defaultHost wires print/inputi/inputs to the process's own stdout/stdin
// when Options supplies none.
func defaultHost() host.Host {
	return host.NewStd(os.Stdout, os.Stdin)
}
