package list

import "io"

// Policy is implemented by concrete list variants. It decides where a
// value is inserted and how it is located.
type Policy[V any] interface {
	// Search reports whether v is in the list.
	Search(v V) bool
	// InsertFirst and InsertLast add exactly one node holding v.
	InsertFirst(v V)
	InsertLast(v V)
	// DeleteNode removes the first node holding v. It reports false and
	// leaves the list unchanged if v is absent.
	DeleteNode(v V) bool
}

// LinkedList is the capability set of a variant that embeds List.
type LinkedList[V any] interface {
	Policy[V]

	IsEmpty() bool
	Len() int
	Front() V
	Back() V
	Print(w io.Writer) error
	Slice() []V
	Destroy()
	Init()
	RemoveAt(pos int) error
	Validate() error

	Head() *Node[V]
	RemoveAfter(prev *Node[V]) (V, bool)
}
