package batch

import (
	"context"
	"sync"

	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/rs/zerolog"
)

type Intaker interface {
	Intake(ctx context.Context, req models.IntakeRequest) (models.IntakeResult, error)
}

// Output is one processed line. Error is set for unreadable lines and intake failures,
// a rejected response is a Result with Accepted false.
type Output struct {
	LineNumber int
	Result     models.IntakeResult
	Error      error
}

type Processor struct {
	intaker Intaker
	workers int
	logger  *zerolog.Logger
}

func NewProcessor(intaker Intaker, workers int, logger *zerolog.Logger) *Processor {
	if workers <= 0 {
		workers = 1
	}
	return &Processor{
		intaker: intaker,
		workers: workers,
		logger:  logger,
	}
}

// Process fans records out to the worker pool. Outputs arrive in completion order.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan Output {
	jobs := make(chan InputRecord)
	out := make(chan Output, p.workers)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				output := p.processOne(ctx, record)
				select {
				case out <- output:
				case <-ctx.Done():
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				p.logger.Warn().Int("line", record.LineNumber).Msg("Batch cancelled, skipping remaining records")
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func (p *Processor) processOne(ctx context.Context, record InputRecord) Output {
	if record.Error != nil {
		return Output{LineNumber: record.LineNumber, Error: record.Error}
	}

	result, err := p.intaker.Intake(ctx, record.Request)
	if err != nil {
		p.logger.Error().
			Err(err).
			Int("line", record.LineNumber).
			Str("event_id", record.Request.EventID).
			Msg("Intake failed")
	}

	return Output{
		LineNumber: record.LineNumber,
		Result:     result,
		Error:      err,
	}
}
