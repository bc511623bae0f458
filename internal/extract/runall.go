package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"cookit/internal/logging"
)

// RunAll executes every extractor concurrently and waits for all of
// them to settle. The returned slice preserves the order extractors
// were registered in, never the order they finished in. A panicking or
// failing extractor becomes a failed Result; RunAll itself only errors
// on an empty extractor list.
func RunAll(ctx context.Context, logger *slog.Logger, extractors []Extractor, input Input) ([]Result, error) {
	if len(extractors) == 0 {
		return nil, fmt.Errorf("run extractors: none registered")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	results := make([]Result, len(extractors))
	var wg sync.WaitGroup
	for i, extractor := range extractors {
		wg.Add(1)
		go func(slot int, ex Extractor) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[slot] = Result{
						Source: ex.Source(),
						Err:    fmt.Errorf("extractor %s panicked: %v", ex.Source(), r),
					}
				}
			}()
			result, err := ex.Extract(ctx, input)
			result.Source = ex.Source()
			if err != nil {
				result.Err = err
				result.Text = ""
				logger.Warn("extractor failed",
					logging.String(logging.FieldSource, string(ex.Source())),
					logging.Error(err))
			} else {
				logger.Info("extractor finished",
					logging.String(logging.FieldSource, string(ex.Source())),
					logging.Int("text_length", len(result.Text)))
			}
			results[slot] = result
		}(i, extractor)
	}
	wg.Wait()
	return results, nil
}
