// Package graph implements breadth-first traversal over implicit graphs.
//
// Automaton algorithms (subset construction, composition, closure) discover
// their graph while walking it: the children of a node are produced by a step
// function, and every reachable node must be visited exactly once even when
// the graph has cycles or self-loops.
package graph

// BreadthFirst visits every node reachable from root exactly once, in
// breadth-first order. step returns the children of a node; it may return
// nodes that were already visited.
func BreadthFirst[T comparable](root T, step func(T) []T) {
	var w Walker[T]
	w.Walk(root, func(item T, out []T) []T {
		return append(out, step(item)...)
	})
}

// Walker is a reusable breadth-first traversal. The queue, the visited set
// and the child buffer are kept between walks, so repeated traversals in a
// hot path do not allocate once the buffers have grown.
//
// The visited set persists across Walk calls until Reset, which lets several
// walks from different roots share a single "visit once" guarantee.
//
// A Walker must not be used by two goroutines at the same time.
type Walker[T comparable] struct {
	queue   []T
	visited map[T]struct{}
	buf     []T
}

// Reset forgets all visited nodes and keeps the allocated buffers.
func (w *Walker[T]) Reset() {
	clear(w.visited)
	w.queue = w.queue[:0]
}

// Walk visits root and everything reachable from it that was not visited
// before. step appends the children of item to out (which has length zero
// and is reused between calls) and returns the extended slice.
func (w *Walker[T]) Walk(root T, step func(item T, out []T) []T) {
	if w.visited == nil {
		w.visited = make(map[T]struct{})
	}
	w.queue = append(w.queue[:0], root)
	for head := 0; head < len(w.queue); head++ {
		item := w.queue[head]
		if _, seen := w.visited[item]; seen {
			continue
		}
		w.visited[item] = struct{}{}
		w.buf = step(item, w.buf[:0])
		for _, child := range w.buf {
			if _, seen := w.visited[child]; !seen {
				w.queue = append(w.queue, child)
			}
		}
	}
	w.queue = w.queue[:0]
}
