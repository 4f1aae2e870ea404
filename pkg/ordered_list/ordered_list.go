package ordered_list

import (
	"golang.org/x/exp/constraints"

	"github.com/pmkol/sllist/pkg/list"
)

// List keeps values in ascending order. Equal values keep their
// insertion order.
//
// The promoted node primitives (PushFront, PushBack, InsertAfter) link
// where they are told and do not keep the order; use the Policy methods.
type List[V constraints.Ordered] struct {
	list.List[V]
}

var _ list.LinkedList[int] = (*List[int])(nil)

func New[V constraints.Ordered]() *List[V] {
	return &List[V]{}
}

// Search stops at the first value not less than v.
func (l *List[V]) Search(v V) bool {
	for n := l.Head(); n != nil; n = n.Next() {
		if n.Value >= v {
			return n.Value == v
		}
	}
	return false
}

// Insert links v after the last value that is not greater than v.
func (l *List[V]) Insert(v V) {
	if t := l.Tail(); t == nil || t.Value <= v {
		l.PushBack(v)
		return
	}

	var prev *list.Node[V]
	for n := l.Head(); n != nil && n.Value <= v; n = n.Next() {
		prev = n
	}
	l.InsertAfter(prev, v)
}

// InsertFirst inserts v at its ordered position.
func (l *List[V]) InsertFirst(v V) {
	l.Insert(v)
}

// InsertLast inserts v at its ordered position.
func (l *List[V]) InsertLast(v V) {
	l.Insert(v)
}

func (l *List[V]) DeleteNode(v V) bool {
	var prev *list.Node[V]
	for n := l.Head(); n != nil && n.Value <= v; prev, n = n, n.Next() {
		if n.Value == v {
			l.RemoveAfter(prev)
			return true
		}
	}
	return false
}

// Assign makes l a deep copy of src. Only ordered lists are accepted
// so the copy stays sorted.
func (l *List[V]) Assign(src *List[V]) {
	l.List.Assign(&src.List)
}

// Clone returns an independent copy of l.
func (l *List[V]) Clone() *List[V] {
	c := New[V]()
	c.Assign(l)
	return c
}
