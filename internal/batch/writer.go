package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

type Summary struct {
	Total    int                        `json:"total"`
	Accepted int                        `json:"accepted"`
	Rejected int                        `json:"rejected"`
	Errors   int                        `json:"errors"`
	ByKind   map[models.FailureKind]int `json:"by_failure_kind"`
	ByReason map[string]int             `json:"by_reason"`
}

func NewSummary() *Summary {
	return &Summary{
		ByKind:   map[models.FailureKind]int{},
		ByReason: map[string]int{},
	}
}

func (s *Summary) Add(output Output) {
	s.Total++
	switch {
	case output.Error != nil:
		s.Errors++
	case output.Result.Accepted:
		s.Accepted++
	default:
		s.Rejected++
		s.ByKind[output.Result.Kind]++
		s.ByReason[output.Result.Reason]++
	}
}

type errorLine struct {
	Line    int    `json:"line"`
	EventID string `json:"event_id,omitempty"`
	Error   string `json:"error"`
}

// Writer writes one JSON line per output, or a single summary document on Close.
type Writer struct {
	mu      sync.Mutex
	encoder *json.Encoder
	format  string
	summary *Summary
	logger  *zerolog.Logger
}

func NewWriter(w io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	if format != FormatJSONL && format != FormatSummary {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	encoder := json.NewEncoder(w)
	if format == FormatSummary {
		encoder.SetIndent("", "  ")
	}

	return &Writer{
		encoder: encoder,
		format:  format,
		summary: NewSummary(),
		logger:  logger,
	}, nil
}

func (w *Writer) Write(output Output) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.summary.Add(output)
	if w.format != FormatJSONL {
		return nil
	}

	if output.Error != nil {
		return w.encoder.Encode(errorLine{
			Line:    output.LineNumber,
			EventID: output.Result.EventID,
			Error:   output.Error.Error(),
		})
	}
	return w.encoder.Encode(output.Result)
}

func (w *Writer) Summary() Summary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.summary
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.logger.Info().
		Int("total", w.summary.Total).
		Int("accepted", w.summary.Accepted).
		Int("rejected", w.summary.Rejected).
		Int("errors", w.summary.Errors).
		Msg("Batch summary")

	if w.format == FormatSummary {
		return w.encoder.Encode(w.summary)
	}
	return nil
}

// WriteSummary writes summary as indented JSON to dst.
func WriteSummary(dst io.Writer, summary Summary) error {
	encoder := json.NewEncoder(dst)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}
