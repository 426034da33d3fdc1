// Package queue provides an unbounded FIFO channel.
//
// Go channels are always bounded, but the file service needs handoff
// queues where senders never block: a decode submission must return
// immediately no matter how far behind the consumer is, and the watch
// bridge must never stall the native watcher. Queue pairs an input
// channel with an output channel and pumps items between them through
// a growable buffer.
package queue

// Queue is an unbounded FIFO connecting an input channel to an output
// channel. Sends on In never block for longer than the pump takes to
// buffer the item. Closing In drains the buffer to Out and then closes
// Out; Out is never closed with items still queued.
type Queue[T any] struct {
	in  chan T
	out chan T
}

// New creates a Queue and starts its pump goroutine. The goroutine
// exits when In is closed and the buffer has drained.
func New[T any]() *Queue[T] {
	q := &Queue[T]{
		in:  make(chan T),
		out: make(chan T),
	}
	go q.pump()
	return q
}

// In returns the send side. Closing it shuts the queue down.
func (q *Queue[T]) In() chan<- T {
	return q.in
}

// Out returns the receive side. It is closed after In is closed and
// all buffered items have been delivered.
func (q *Queue[T]) Out() <-chan T {
	return q.out
}

// Close closes the input side. Must not be called twice, and no sends
// may follow it; the queue has a single owning producer by convention.
func (q *Queue[T]) Close() {
	close(q.in)
}

func (q *Queue[T]) pump() {
	var buf []T
	for {
		if len(buf) == 0 {
			v, ok := <-q.in
			if !ok {
				close(q.out)
				return
			}
			buf = append(buf, v)
			continue
		}

		select {
		case v, ok := <-q.in:
			if !ok {
				for _, v := range buf {
					q.out <- v
				}
				close(q.out)
				return
			}
			buf = append(buf, v)
		case q.out <- buf[0]:
			buf = buf[1:]
		}
	}
}
