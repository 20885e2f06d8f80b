package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCactus_EmptyIsZeroValue(t *testing.T) {
	var c Cactus[int]
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Depth())
	_, ok := c.Val()
	assert.False(t, ok)
	_, ok = c.Parent()
	assert.False(t, ok)
}

func TestCactus_ChildPushesOnTop(t *testing.T) {
	var c Cactus[int]
	c1 := c.Child(1)
	c2 := c1.Child(2)

	assert.False(t, c2.Empty())
	assert.Equal(t, 2, c2.Depth())

	top, ok := c2.Val()
	assert.True(t, ok)
	assert.Equal(t, 2, top)

	parent, ok := c2.Parent()
	assert.True(t, ok)
	assert.Equal(t, 1, parent.Depth())
	parentTop, _ := parent.Val()
	assert.Equal(t, 1, parentTop)
}

func TestCactus_ChildDoesNotMutateReceiver(t *testing.T) {
	var c Cactus[int]
	base := c.Child(1)
	_ = base.Child(2)
	_ = base.Child(3)

	assert.Equal(t, 1, base.Depth())
	top, _ := base.Val()
	assert.Equal(t, 1, top)
}

func TestCactus_EqualAcrossSharedTails(t *testing.T) {
	var c Cactus[int]
	base := c.Child(1).Child(2)
	left := base.Child(3)
	right := base.Child(3)

	assert.True(t, left.Equal(right))
	assert.Equal(t, left.Hash(), right.Hash())

	divergent := base.Child(4)
	assert.False(t, left.Equal(divergent))
}

func TestCactus_EqualDifferentDepths(t *testing.T) {
	var c Cactus[int]
	short := c.Child(1)
	long := short.Child(2)
	assert.False(t, short.Equal(long))
}

func TestCactus_Values(t *testing.T) {
	var c Cactus[string]
	stack := c.Child("a").Child("b").Child("c")
	assert.Equal(t, []string{"c", "b", "a"}, stack.Values())
}
