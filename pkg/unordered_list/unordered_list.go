package unordered_list

import (
	"github.com/pmkol/sllist/pkg/list"
)

// List keeps values in insertion order.
type List[V comparable] struct {
	list.List[V]
}

var _ list.LinkedList[int] = (*List[int])(nil)

func New[V comparable]() *List[V] {
	return &List[V]{}
}

func (l *List[V]) Search(v V) bool {
	for n := l.Head(); n != nil; n = n.Next() {
		if n.Value == v {
			return true
		}
	}
	return false
}

func (l *List[V]) InsertFirst(v V) {
	l.PushFront(v)
}

func (l *List[V]) InsertLast(v V) {
	l.PushBack(v)
}

func (l *List[V]) DeleteNode(v V) bool {
	var prev *list.Node[V]
	for n := l.Head(); n != nil; prev, n = n, n.Next() {
		if n.Value == v {
			l.RemoveAfter(prev)
			return true
		}
	}
	return false
}

// Assign makes l a deep copy of src.
func (l *List[V]) Assign(src *List[V]) {
	l.List.Assign(&src.List)
}

// Clone returns an independent copy of l.
func (l *List[V]) Clone() *List[V] {
	c := New[V]()
	c.Assign(l)
	return c
}
