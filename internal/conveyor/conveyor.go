// Package conveyor provides a fixed-capacity FIFO line between producers
// and consumers. Put blocks while the line is full and Take blocks while it
// is empty; both are safe for any number of goroutines.
package conveyor

import "sync"

type Line struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	items []int // ring buffer
	front int
	count int
}

func New(capacity int) *Line {
	l := &Line{items: make([]int, capacity)}
	l.notFull = sync.NewCond(&l.mu)
	l.notEmpty = sync.NewCond(&l.mu)
	return l
}

// Put appends item, waiting for a free slot if the line is full.
func (l *Line) Put(item int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.count == len(l.items) {
		l.notFull.Wait()
	}

	l.items[(l.front+l.count)%len(l.items)] = item
	l.count++
	l.notEmpty.Signal()
}

// Take removes and returns the oldest item, waiting for one if the line is
// empty.
func (l *Line) Take() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.count == 0 {
		l.notEmpty.Wait()
	}

	item := l.items[l.front]
	l.front = (l.front + 1) % len(l.items)
	l.count--
	l.notFull.Signal()
	return item
}

// Len reports how many items sit on the line right now.
func (l *Line) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
