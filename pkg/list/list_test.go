package list

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInts(vs ...int) *List[int] {
	l := New[int]()
	for _, v := range vs {
		l.PushBack(v)
	}
	return l
}

func requireChain(t *testing.T, l *List[int], want ...int) {
	t.Helper()
	require.NoError(t, l.Validate())
	require.Equal(t, len(want), l.Len())
	require.Equal(t, len(want) == 0, l.IsEmpty())
	if len(want) == 0 {
		require.Empty(t, l.Slice())
		return
	}
	require.Equal(t, want, l.Slice())
	require.Equal(t, want[0], l.Front())
	require.Equal(t, want[len(want)-1], l.Back())
}

func TestList_Empty(t *testing.T) {
	l := New[int]()
	requireChain(t, l)
	assert.Nil(t, l.Head())
	assert.Nil(t, l.Tail())
	assert.Panics(t, func() { l.Front() })
	assert.Panics(t, func() { l.Back() })
}

func TestList_SingleElement(t *testing.T) {
	l := newInts(42)
	assert.Equal(t, 42, l.Front())
	assert.Equal(t, 42, l.Back())
	assert.Same(t, l.Head(), l.Tail())
	requireChain(t, l, 42)
}

func TestList_Push(t *testing.T) {
	l := New[int]()
	l.PushBack(2)
	l.PushFront(1)
	l.PushBack(3)
	requireChain(t, l, 1, 2, 3)

	n := l.Head().Next()
	l.InsertAfter(n, 25)
	requireChain(t, l, 1, 2, 25, 3)

	l.InsertAfter(l.Tail(), 4)
	requireChain(t, l, 1, 2, 25, 3, 4)
}

func TestList_RemoveAt(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		pos  int
		want []int
	}{
		{"head", []int{10, 20, 30}, 0, []int{20, 30}},
		{"tail", []int{10, 20, 30}, 2, []int{10, 20}},
		{"middle", []int{10, 20, 30}, 1, []int{10, 30}},
		{"only", []int{10}, 0, nil},
		{"tail of two", []int{10, 20}, 1, []int{10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newInts(tt.in...)
			require.NoError(t, l.RemoveAt(tt.pos))
			requireChain(t, l, tt.want...)
		})
	}
}

func TestList_RemoveAt_tailUpdated(t *testing.T) {
	l := newInts(10, 20, 30)
	require.NoError(t, l.RemoveAt(2))
	assert.Equal(t, 20, l.Back())

	// back insertion must follow the new tail
	l.PushBack(40)
	requireChain(t, l, 10, 20, 40)
}

func TestList_RemoveAt_outOfRange(t *testing.T) {
	l := newInts(10, 20)
	for _, pos := range []int{5, -1, 2} {
		err := l.RemoveAt(pos)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrOutOfRange))

		var re *RangeError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, pos, re.Pos)
		assert.Equal(t, 2, re.Len)
		requireChain(t, l, 10, 20)
	}

	err := New[int]().RemoveAt(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestList_RemoveAfter(t *testing.T) {
	l := newInts(1, 2, 3)

	v, ok := l.RemoveAfter(l.Head())
	require.True(t, ok)
	assert.Equal(t, 2, v)
	requireChain(t, l, 1, 3)

	_, ok = l.RemoveAfter(l.Tail())
	assert.False(t, ok)

	v, ok = l.RemoveAfter(l.Head())
	require.True(t, ok)
	assert.Equal(t, 3, v)
	requireChain(t, l, 1)

	v, ok = l.RemoveAfter(nil)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	requireChain(t, l)

	_, ok = l.RemoveAfter(nil)
	assert.False(t, ok)
}

func TestList_foreignNode(t *testing.T) {
	a := newInts(1, 2)
	b := newInts(3)
	assert.PanicsWithValue(t, "node does not belong to this list", func() {
		b.InsertAfter(a.Head(), 9)
	})
	assert.Panics(t, func() { b.RemoveAfter(a.Head()) })

	stale := a.Head()
	a.Destroy()
	assert.Nil(t, stale.Next())
	assert.Panics(t, func() { a.InsertAfter(stale, 1) })
	requireChain(t, b, 3)
}

func TestList_copiedByValue(t *testing.T) {
	a := newInts(1, 2, 3)
	b := *a

	assert.Panics(t, func() { b.RemoveAt(1) })
	assert.Panics(t, func() { b.Destroy() })
	assert.Panics(t, func() { b.PushFront(0) })
	assert.Panics(t, func() { b.PushBack(4) })
	assert.Panics(t, func() { b.RemoveAfter(nil) })
	assert.Panics(t, func() { b.Assign(a) })
	assert.Error(t, b.Validate())
	requireChain(t, a, 1, 2, 3)

	// a copy of a never used list is a fresh list
	var zero List[int]
	z := zero
	z.PushBack(1)
	requireChain(t, &z, 1)
	requireChain(t, &zero)
}

func TestList_Destroy(t *testing.T) {
	l := newInts(1, 2, 3)
	l.Destroy()
	requireChain(t, l)
	l.Destroy()
	requireChain(t, l)

	l.PushBack(7)
	requireChain(t, l, 7)
	l.Init()
	requireChain(t, l)
}

func TestList_Clone(t *testing.T) {
	l := newInts(1, 2, 3)
	c := l.Clone()
	requireChain(t, c, 1, 2, 3)
	assert.NotSame(t, l.Head(), c.Head())

	c.PushBack(4)
	require.NoError(t, c.RemoveAt(0))
	requireChain(t, c, 2, 3, 4)
	requireChain(t, l, 1, 2, 3)

	l.PushFront(0)
	requireChain(t, c, 2, 3, 4)

	requireChain(t, New[int]().Clone())
}

func TestList_Assign(t *testing.T) {
	src := newInts(1, 2, 3)
	dst := newInts(9, 8)
	old := dst.Head()

	dst.Assign(src)
	requireChain(t, dst, 1, 2, 3)
	assert.Nil(t, old.Next())
	assert.Panics(t, func() { dst.InsertAfter(old, 0) })

	src.Destroy()
	requireChain(t, dst, 1, 2, 3)

	dst.Assign(New[int]())
	requireChain(t, dst)
}

func TestList_AssignSelf(t *testing.T) {
	l := newInts(1, 2, 3)
	head := l.Head()
	l.Assign(l)
	requireChain(t, l, 1, 2, 3)
	assert.Same(t, head, l.Head())
}

func TestList_Print(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, newInts(10, 20, 30).Print(b))
	assert.Equal(t, "10 20 30\n", b.String())

	b.Reset()
	require.NoError(t, New[string]().Print(b))
	assert.Equal(t, "\n", b.String())
}

func TestList_All(t *testing.T) {
	l := newInts(1, 2, 3, 4)
	var got []int
	for v := range l.All() {
		if v == 3 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
}

func TestList_Validate(t *testing.T) {
	l := newInts(1, 2, 3)
	l.count = 2
	assert.Error(t, l.Validate())

	l = newInts(1, 2, 3)
	l.tail = l.head
	assert.Error(t, l.Validate())

	l = newInts(1, 2)
	l.tail.next = l.head
	assert.Error(t, l.Validate())

	l = New[int]()
	l.head = &Node[int]{list: l}
	assert.Error(t, l.Validate())
}

// Random operation sequences must keep every invariant.
func TestList_invariants(t *testing.T) {
	l := New[int]()
	var model []int
	for i := 0; i < 2000; i++ {
		switch op := (i * 7919) % 5; op {
		case 0:
			l.PushFront(i)
			model = append([]int{i}, model...)
		case 1, 2:
			l.PushBack(i)
			model = append(model, i)
		case 3:
			pos := (i * 31) % (len(model) + 2)
			err := l.RemoveAt(pos)
			if pos < len(model) {
				require.NoError(t, err)
				model = append(model[:pos], model[pos+1:]...)
			} else {
				require.ErrorIs(t, err, ErrOutOfRange)
			}
		case 4:
			if i%100 == 1 {
				l.Destroy()
				model = nil
			} else {
				c := l.Clone()
				l.Assign(c)
			}
		}
		require.NoError(t, l.Validate())
		require.Equal(t, len(model), l.Len())
		require.Equal(t, l.IsEmpty(), l.Len() == 0)
	}
	if len(model) == 0 {
		requireChain(t, l)
	} else {
		requireChain(t, l, model...)
	}
}
