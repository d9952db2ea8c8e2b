/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package queue implements the priority-ordered, multi-producer/multi-consumer
// hand-off used between pipeline stages. It is the Go restatement of
// CRegisteringPriorityQueue from the original MSA compressor: the number of
// producers is fixed at New, each producer signals that it is done with
// MarkCompleted, and Pop releases items strictly in priority order
// regardless of push order.
package queue

import (
	"container/heap"
	"sync"
)

type entry[T any] struct {
	priority uint64
	item     T
}

// heapSlice is a container/heap min-heap ordered by priority.
type heapSlice[T any] []entry[T]

func (h heapSlice[T]) Len() int            { return len(h) }
func (h heapSlice[T]) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h heapSlice[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *heapSlice[T]) Push(x any)         { *h = append(*h, x.(entry[T])) }
func (h *heapSlice[T]) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// PriorityQueue is a thread-safe queue with strict sequential delivery: Pop
// only ever releases the item whose priority equals the internal release
// counter, starting at 0, and increments the counter on every successful
// pop. Push is non-blocking and unbounded.
type PriorityQueue[T any] struct {
	mtx         sync.Mutex
	cond        *sync.Cond
	heap        heapSlice[T]
	released    uint64
	nProducers  int
}

// New creates a PriorityQueue that will not signal completion until
// nProducers distinct calls to MarkCompleted have been made.
func New[T any](nProducers int) *PriorityQueue[T] {
	q := &PriorityQueue[T]{nProducers: nProducers}
	q.cond = sync.NewCond(&q.mtx)
	heap.Init(&q.heap)
	return q
}

// Push inserts item at the given priority. Never blocks.
func (this *PriorityQueue[T]) Push(priority uint64, item T) {
	this.mtx.Lock()
	heap.Push(&this.heap, entry[T]{priority: priority, item: item})
	this.mtx.Unlock()
	this.cond.Broadcast()
}

// MarkCompleted registers that one producer has finished pushing. Must be
// called exactly once per producer declared to New.
func (this *PriorityQueue[T]) MarkCompleted() {
	this.mtx.Lock()
	this.nProducers--
	this.mtx.Unlock()
	this.cond.Broadcast()
}

// Pop blocks until the head of the heap has the releasable priority, or
// every producer has completed and no releasable item remains, in which
// case ok is false.
func (this *PriorityQueue[T]) Pop() (item T, ok bool) {
	this.mtx.Lock()
	defer this.mtx.Unlock()

	for {
		if len(this.heap) > 0 && this.heap[0].priority == this.released {
			e := heap.Pop(&this.heap).(entry[T])
			this.released++
			return e.item, true
		}

		if this.nProducers <= 0 {
			var zero T
			return zero, false
		}

		this.cond.Wait()
	}
}
