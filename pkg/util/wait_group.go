package util

import "sync"

type WaitGroupWrapper struct {
	sync.WaitGroup
}

func (w *WaitGroupWrapper) Wrap(f func()) {
	w.Add(1)

	go func() {
		defer w.Done()
		f()
	}()
}

// Each runs f for every index in [0, n) on its own goroutine and waits for
// all of them.
func Each(n int, f func(i int)) {
	var wg WaitGroupWrapper
	for i := 0; i < n; i++ {
		i := i
		wg.Wrap(func() { f(i) })
	}
	wg.Wait()
}
