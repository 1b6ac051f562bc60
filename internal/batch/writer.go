package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

type outcomeLine struct {
	Source string              `json:"source"`
	Result *models.SolveResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

type Writer struct {
	w       io.Writer
	format  string
	solved  int
	failed  int
	logger  *zerolog.Logger
	encoder *json.Encoder
}

func NewWriter(w io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	if format != FormatJSONL && format != FormatSummary {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return &Writer{
		w:       w,
		format:  format,
		logger:  logger,
		encoder: json.NewEncoder(w),
	}, nil
}

func (w *Writer) Write(o Outcome) error {
	if o.Error != nil {
		w.failed++
	} else {
		w.solved++
	}

	if w.format == FormatSummary {
		return w.writeSummaryLine(o)
	}

	line := outcomeLine{Source: o.Source}
	if o.Error != nil {
		line.Error = o.Error.Error()
	} else {
		line.Result = &o.Result
	}
	return w.encoder.Encode(line)
}

func (w *Writer) writeSummaryLine(o Outcome) error {
	var err error
	switch {
	case o.Error != nil:
		_, err = fmt.Fprintf(w.w, "%s: error: %v\n", o.Source, o.Error)
	case o.Result.Part2 != nil:
		_, err = fmt.Fprintf(w.w, "%s: %s=%d, with %s overridden %s=%d\n",
			o.Source, o.Result.Target, o.Result.Part1, o.Result.Override, o.Result.Target, *o.Result.Part2)
	default:
		_, err = fmt.Fprintf(w.w, "%s: %s=%d\n", o.Source, o.Result.Target, o.Result.Part1)
	}
	return err
}

// Close writes the totals line in summary format.
func (w *Writer) Close() error {
	w.logger.Debug().Int("solved", w.solved).Int("failed", w.failed).Msg("writer closed")
	if w.format != FormatSummary {
		return nil
	}
	_, err := fmt.Fprintf(w.w, "solved %d, failed %d\n", w.solved, w.failed)
	return err
}
