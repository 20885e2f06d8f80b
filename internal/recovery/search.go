package recovery

import "container/heap"

// Neighbor is a candidate successor emitted by an expand callback, paired
// with the absolute cost of reaching it (spec §4.5: "emit (cost, successor)
// pairs").
type Neighbor[N any] struct {
	Cost uint32
	Node N
}

// dijkstra is the generic min-priority-frontier search with merging from
// spec §4.5. It is parameterised the same way cpctplus.rs's astar::dijkstra
// call is:
//
//   - key computes the coarse, O(1) equivalence-class hash for a node
//     (spec §3's "pstack + la_idx only").
//   - mergeable is the fine compatibility check within a hash bucket.
//   - expand emits a node's successors; the exploreAll flag is always true
//     here (this package never re-expands a node after success-harvesting
//     begins, so the "shift-only" mode spec §4.5 allows for is unobserved -
//     see SPEC_FULL.md §12.1). Returning false aborts the search
//     immediately (used for the deadline check).
//   - merge folds a rediscovered node into its equal-cost equivalent,
//     whether that one is already closed or still open.
//   - success is the termination predicate.
//
// On return, every result has equal cost: the search collects every
// success node popped at the first (lowest) cost at which any success node
// is found, per spec §4.5 ("continue popping as long as the next node has
// cost == n.cf... then terminate").
func dijkstra[N any](
	start N,
	startCost uint32,
	key func(N) uint64,
	mergeable func(a, b N) bool,
	costOf func(N) uint32,
	expand func(exploreAll bool, n N, sink *[]Neighbor[N]) bool,
	merge func(old *N, newN N),
	success func(N) bool,
) []N {
	d := &dijkstraState[N]{
		key:       key,
		mergeable: mergeable,
		costOf:    costOf,
		openIdx:   make(map[uint64][]*openItem[N]),
		closedIdx: make(map[uint64][]*N),
	}

	startNode := new(N)
	*startNode = start
	heap.Push(&d.open, d.track(startCost, startNode))

	var results []N
	for d.open.Len() > 0 {
		item := heap.Pop(&d.open).(*openItem[N])
		if item.superseded {
			continue
		}
		n := *item.node

		if success(n) {
			results = append(results, n)
			for d.open.Len() > 0 && d.open[0].cost == item.cost {
				more := heap.Pop(&d.open).(*openItem[N])
				if more.superseded {
					continue
				}
				if success(*more.node) {
					results = append(results, *more.node)
				}
			}
			return results
		}

		k := key(n)
		d.removeOpen(k, item)
		d.closedIdx[k] = append(d.closedIdx[k], item.node)

		var nbrs []Neighbor[N]
		if !expand(true, n, &nbrs) {
			return results
		}
		for _, nb := range nbrs {
			d.offer(nb.Cost, nb.Node, merge)
		}
	}
	return results
}

type openItem[N any] struct {
	cost       uint32
	seq        int
	node       *N
	superseded bool
}

type openHeap[N any] []*openItem[N]

func (h openHeap[N]) Len() int { return len(h) }
func (h openHeap[N]) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h openHeap[N]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *openHeap[N]) Push(x any)   { *h = append(*h, x.(*openItem[N])) }
func (h *openHeap[N]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type dijkstraState[N any] struct {
	key        func(N) uint64
	mergeable  func(a, b N) bool
	costOf     func(N) uint32
	open       openHeap[N]
	openIdx    map[uint64][]*openItem[N]
	closedIdx  map[uint64][]*N
	seqCounter int
}

func (d *dijkstraState[N]) track(cost uint32, node *N) *openItem[N] {
	d.seqCounter++
	item := &openItem[N]{cost: cost, seq: d.seqCounter, node: node}
	k := d.key(*node)
	d.openIdx[k] = append(d.openIdx[k], item)
	return item
}

func (d *dijkstraState[N]) removeOpen(k uint64, item *openItem[N]) {
	bucket := d.openIdx[k]
	for i, it := range bucket {
		if it == item {
			d.openIdx[k] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

func (d *dijkstraState[N]) findClosed(k uint64, n N) *N {
	for _, p := range d.closedIdx[k] {
		if d.mergeable(*p, n) {
			return p
		}
	}
	return nil
}

func (d *dijkstraState[N]) findOpen(k uint64, n N) *openItem[N] {
	for _, it := range d.openIdx[k] {
		if !it.superseded && d.mergeable(*it.node, n) {
			return it
		}
	}
	return nil
}

// offer folds a newly-discovered (cost, node) neighbour into the frontier,
// implementing the Dijkstra-with-merge update rules from spec §4.5.
func (d *dijkstraState[N]) offer(cost uint32, node N, merge func(old *N, newN N)) {
	k := d.key(node)

	if old := d.findClosed(k, node); old != nil {
		if cost == d.costOf(*old) {
			merge(old, node)
		}
		// cost > old's cost: already-optimal closed node stands, drop.
		// cost < old's cost cannot happen with nonnegative edge weights.
		return
	}

	if item := d.findOpen(k, node); item != nil {
		switch {
		case cost > item.cost:
			return
		case cost == item.cost:
			merge(item.node, node)
			return
		default:
			item.superseded = true
			d.removeOpen(k, item)
		}
	}

	n := node
	heap.Push(&d.open, d.track(cost, &n))
}
