//go:build profile

package profiler

import (
	"sync"
	"sync/atomic"
)

// event is one scope boundary. name indexes the interned scope names.
type event struct {
	at   int64 // ns
	name int
	open bool
}

// recorder is a fixed size ring of scope events. Once full the oldest
// events are overwritten.
type recorder struct {
	ready  atomic.Bool
	size   uint64
	cursor atomic.Uint64
	events []event
	names  names
}

func (r *recorder) reset(capacity int) {
	r.ready.Store(false)
	r.size = uint64(capacity)
	r.events = make([]event, r.size)
	r.cursor.Store(0)
	r.ready.Store(true)
}

func (r *recorder) push(e event) {
	i := r.cursor.Add(1) - 1
	r.events[i%r.size] = e
}

// snapshot returns the retained events oldest first.
func (r *recorder) snapshot() []event {
	n := r.cursor.Load()
	if n == 0 || r.size == 0 {
		return nil
	}
	first := uint64(0)
	if n > r.size {
		first = n - r.size
	}
	out := make([]event, 0, n-first)
	for k := first; k < n; k++ {
		out = append(out, r.events[k%r.size])
	}
	return out
}

// names interns scope names so events stay small.
type names struct {
	mu    sync.Mutex
	list  []string
	index map[string]int
}

func (n *names) id(name string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if id, ok := n.index[name]; ok {
		return id
	}
	if n.index == nil {
		n.index = make(map[string]int)
	}
	id := len(n.list)
	n.index[name] = id
	n.list = append(n.list, name)
	return id
}

func (n *names) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.list...)
}
