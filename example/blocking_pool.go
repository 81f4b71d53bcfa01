package main

// BlockingPool is a fixed-capacity pool whose Get blocks until an item is
// available. The runner uses it as the in-flight frame limit: workers take
// a token before computing a frame, the writer returns it once the frame
// has been flushed.
type BlockingPool[T any] struct {
	pool chan T
}

func NewBlockingPool[T any](capacity int) BlockingPool[T] {
	return BlockingPool[T]{pool: make(chan T, capacity)}
}

func (p *BlockingPool[T]) Get() T    { return <-p.pool }
func (p *BlockingPool[T]) Put(obj T) { p.pool <- obj }
