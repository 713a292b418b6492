package scheduler

import "container/heap"

// idHeap implements heap.Interface over task ids. Higher priority comes first;
// equal priorities fall back to the lower id, which is admission order.
type idHeap struct {
	ids        []int
	priorityOf func(int) int
}

func (h idHeap) Len() int { return len(h.ids) }

func (h idHeap) Less(i, j int) bool {
	pi, pj := h.priorityOf(h.ids[i]), h.priorityOf(h.ids[j])
	if pi != pj {
		return pi > pj
	}
	return h.ids[i] < h.ids[j]
}

func (h idHeap) Swap(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
}

func (h *idHeap) Push(x any) {
	h.ids = append(h.ids, x.(int))
}

func (h *idHeap) Pop() any {
	old := h.ids
	n := len(old)
	id := old[n-1]
	h.ids = old[0 : n-1]
	return id
}

// Queue is the priority-ordered working set of pending task ids. It holds ids
// only; priorities are read through priorityOf on every comparison.
type Queue struct {
	h *idHeap
}

// NewQueue creates an empty queue ordered by the given priority lookup.
func NewQueue(priorityOf func(int) int) *Queue {
	h := &idHeap{priorityOf: priorityOf}
	heap.Init(h)
	return &Queue{h: h}
}

// Push adds a pending id.
func (q *Queue) Push(id int) {
	heap.Push(q.h, id)
}

// Pop removes and returns the most urgent id. ok is false when the queue is empty.
func (q *Queue) Pop() (id int, ok bool) {
	if q.h.Len() == 0 {
		return 0, false
	}
	return heap.Pop(q.h).(int), true
}

// Peek returns the most urgent id without removing it.
func (q *Queue) Peek() (id int, ok bool) {
	if q.h.Len() == 0 {
		return 0, false
	}
	return q.h.ids[0], true
}

// Len returns the number of pending ids.
func (q *Queue) Len() int {
	return q.h.Len()
}
