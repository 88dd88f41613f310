package rworker

import "sync"

// Job schedules fn on a new goroutine gated by the rate channel, which
// bounds the number of jobs running at once to its capacity. The first
// error is kept in errCh, later ones are dropped. Callers wait on wg and
// then drain errCh.
func Job(wg *sync.WaitGroup, fn func() error, rate chan struct{}, errCh chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		rate <- struct{}{}
		defer func() { <-rate }()
		if err := fn(); err != nil {
			select {
			case errCh <- err:
			default:
			}
		}
	}()
}
