package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/rs/zerolog"
)

// maxLineSize bounds one JSONL line; generated content can exceed bufio's 64KB default.
const maxLineSize = 1024 * 1024

type InputRecord struct {
	LineNumber int
	Request    models.IntakeRequest
	Error      error
}

type Reader struct {
	reader io.Reader
	logger *zerolog.Logger
}

func NewReader(reader io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		reader: reader,
		logger: logger,
	}
}

// ReadAll streams one record per non-blank line. The channel closes at EOF or when ctx is cancelled.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.reader)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}
			if err := json.Unmarshal([]byte(line), &record.Request); err != nil {
				r.logger.Warn().Err(err).Int("line", lineNumber).Msg("Failed to parse input line")
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Int("line", lineNumber).Msg("Failed to read input")
			select {
			case out <- InputRecord{LineNumber: lineNumber + 1, Error: fmt.Errorf("read input: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()

	return out
}
