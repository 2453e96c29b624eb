package sqslisten

// ListenHandle owns the background poll goroutine started by Listen.
// A handle that is dropped without Stop leaks the goroutine; explicit
// Stop is required for a clean shutdown.
type ListenHandle struct {
	stop chan struct{}
	done chan struct{}
}

// Stop halts the poll loop and waits for the poll goroutine to exit,
// so no further receive call happens after Stop returns. A tick already
// in flight is allowed to finish. Stop must be called exactly once;
// a second call panics.
func (h *ListenHandle) Stop() {
	close(h.stop)
	<-h.done
}
