package multievent

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ProcessFunc handles one input and reports what it produced.
type ProcessFunc func(ctx context.Context, input string) (Summary, error)

// ProcessFiles runs fn for every input with at most numWorkers in flight.
// Summaries come back in input order. The first failure cancels the context
// passed to the jobs that have not finished; panics inside fn are turned into
// errors for that input.
func ProcessFiles(ctx context.Context, inputs []string, numWorkers int, fn ProcessFunc) ([]Summary, error) {
	if numWorkers < 1 {
		return nil, invalidArgument("number of workers must be >= 1, got %d", numWorkers)
	}
	summaries := make([]Summary, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summary, err := runJob(ctx, input, fn)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func runJob(ctx context.Context, input string, fn ProcessFunc) (summary Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker recovered from panic: %v", r)
			logger.Error(err.Error())
		}
	}()
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Processing %s", input), "workers")
	}
	return fn(ctx, input)
}
