package solver

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strconv"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
)

// CacheKey digests the canonical text of a program together with the options
// that change its answer. Formatting differences in the input do not change
// the key. Results produced without static checks never answer a checked solve.
func CacheKey(program []wiring.Wire, opts Options) string {
	h := sha256.New()
	for _, w := range program {
		io.WriteString(h, w.String())
		h.Write([]byte{'\n'})
	}
	io.WriteString(h, "target="+string(opts.Target)+"\n")
	io.WriteString(h, "part2="+strconv.FormatBool(opts.PartTwo)+"\n")
	io.WriteString(h, "checks="+strconv.FormatBool(opts.RunChecks)+"\n")
	if opts.PartTwo {
		io.WriteString(h, "override="+string(opts.Override)+"\n")
	}
	return hex.EncodeToString(h.Sum(nil))
}
