package batch

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
	"github.com/rs/zerolog"
)

// InputRecord is one non-blank line of a circuit file. LineNumber counts every
// line of the input, blank ones included, starting at 1.
type InputRecord struct {
	LineNumber int
	Line       string
	Wire       wiring.Wire
	Error      error
}

type Reader struct {
	r      io.Reader
	logger *zerolog.Logger
}

func NewReader(r io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		r:      r,
		logger: logger,
	}
}

// ReadAll streams parsed records until the input ends or ctx is cancelled. A
// read failure is delivered as a final record with Error set.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.r)
		lineNumber := 0
		for scanner.Scan() {
			lineNumber++
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber, Line: line}
			record.Wire, record.Error = wiring.Parse(line)
			if record.Error != nil {
				record.Error = &wiring.LineError{Line: lineNumber, Err: record.Error}
			}

			select {
			case out <- record:
			case <-ctx.Done():
				r.logger.Warn().Int("line", lineNumber).Msg("reading cancelled")
				return
			}
		}

		if err := scanner.Err(); err != nil {
			select {
			case out <- InputRecord{LineNumber: lineNumber + 1, Error: err}:
			case <-ctx.Done():
			}
		}
	}()

	return out
}

// Load reads a whole circuit and stops at the first bad line. It returns the
// parsed wires and their source lines.
func (r *Reader) Load(ctx context.Context) ([]wiring.Wire, []string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wires []wiring.Wire
	var lines []string
	for record := range r.ReadAll(ctx) {
		if record.Error != nil {
			return nil, nil, record.Error
		}
		wires = append(wires, record.Wire)
		lines = append(lines, record.Line)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	r.logger.Debug().Int("wires", len(wires)).Msg("circuit loaded")
	return wires, lines, nil
}
