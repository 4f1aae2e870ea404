package list

// Node is a single element of a List. A Node is owned by exactly one
// List and is only reachable through that List's chain.
type Node[V any] struct {
	Value V

	next *Node[V]
	list *List[V]
}

// Next returns the following node, or nil at the end of the chain.
func (n *Node[V]) Next() *Node[V] {
	return n.next
}

// release detaches n so stale references can no longer reach the chain.
func (n *Node[V]) release() {
	n.next = nil
	n.list = nil
}
