package generator

import (
	"context"
	"sync"
)

// job renders one document.
type job func(ctx context.Context) error

// runPool executes jobs on the given number of workers. The first failure
// cancels the jobs not yet started and is returned.
func runPool(ctx context.Context, workers int, jobs []job) error {
	if workers <= 1 {
		for _, j := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := j(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan job, workers*2)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if poolCtx.Err() != nil {
					continue
				}
				if err := j(poolCtx); err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
				}
			}
		}()
	}

submit:
	for _, j := range jobs {
		select {
		case <-poolCtx.Done():
			break submit
		case queue <- j:
		}
	}
	close(queue)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
