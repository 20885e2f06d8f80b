package recovery

import "fmt"

// Cactus is an immutable, structurally-shared stack. Many independent
// Cactus values can extend the same prefix without copying it: pushing onto
// a Cactus never mutates it, it returns a new Cactus whose parent pointer is
// the receiver. This makes it cheap to fork a stack once per candidate in a
// search frontier of thousands of candidates that mostly share a common
// ancestry.
//
// The zero value of Cactus[T] is the empty stack.
type Cactus[T comparable] struct {
	node *cactusNode[T]
}

type cactusNode[T comparable] struct {
	val    T
	parent *cactusNode[T]
	depth  int
	hash   uint64
}

// hashSeed is the hash of the empty stack. Any nonzero constant works; this
// one just avoids colliding with a zero-valued uint64 accumulator.
const hashSeed uint64 = 0xcbf29ce484222325

// Child returns a new Cactus with v on top of the receiver. The receiver is
// unchanged. O(1).
func (c Cactus[T]) Child(v T) Cactus[T] {
	return Cactus[T]{node: &cactusNode[T]{
		val:    v,
		parent: c.node,
		depth:  c.Depth() + 1,
		hash:   mixHash(c.curHash(), v),
	}}
}

// Parent returns the stack below the top of the receiver, and false if the
// receiver is already empty. O(1).
func (c Cactus[T]) Parent() (Cactus[T], bool) {
	if c.node == nil {
		return Cactus[T]{}, false
	}
	return Cactus[T]{node: c.node.parent}, true
}

// Val returns the value on top of the receiver, and false if the receiver is
// empty. O(1).
func (c Cactus[T]) Val() (T, bool) {
	var zero T
	if c.node == nil {
		return zero, false
	}
	return c.node.val, true
}

// Empty returns whether the stack has no elements.
func (c Cactus[T]) Empty() bool {
	return c.node == nil
}

// Depth returns the number of elements in the stack. O(1).
func (c Cactus[T]) Depth() int {
	if c.node == nil {
		return 0
	}
	return c.node.depth
}

// Hash returns a value consistent with Equal: if a.Equal(b) then
// a.Hash() == b.Hash(). It is deliberately cheap (O(1), cached
// incrementally at Child time) so that it can be used as a map key without
// walking the stack.
func (c Cactus[T]) Hash() uint64 {
	return c.curHash()
}

func (c Cactus[T]) curHash() uint64 {
	if c.node == nil {
		return hashSeed
	}
	return c.node.hash
}

// Equal reports whether two stacks contain the same values in the same
// order. Stacks that share a physical tail short-circuit as soon as their
// node pointers converge.
func (c Cactus[T]) Equal(o Cactus[T]) bool {
	if c.Depth() != o.Depth() {
		return false
	}
	a, b := c.node, o.node
	for a != b {
		if a == nil || b == nil {
			return false
		}
		if a.val != b.val {
			return false
		}
		a = a.parent
		b = b.parent
	}
	return true
}

// Values returns the stack's contents from top to bottom. It allocates a
// slice of length Depth(); unlike Child/Parent/Val, it is not O(1).
func (c Cactus[T]) Values() []T {
	out := make([]T, 0, c.Depth())
	for n := c.node; n != nil; n = n.parent {
		out = append(out, n.val)
	}
	return out
}

// mixHash folds v into an FNV-1a running hash. It is only ever called on a
// single new value per Child call, so combining it with the cached parent
// hash keeps Child O(1) regardless of stack depth.
func mixHash[T comparable](prev uint64, v T) uint64 {
	h := prev
	for _, b := range []byte(fmt.Sprintf("%v", v)) {
		h ^= uint64(b)
		h *= 0x100000001b3
	}
	return h
}
