package list

// Clone returns an independent deep copy of l.
func (l *List[V]) Clone() *List[V] {
	c := New[V]()
	c.Assign(l)
	return c
}

// Assign makes l a deep copy of src. The old chain of l is released
// once the new one is complete. Assigning a list to itself is a no-op.
func (l *List[V]) Assign(src *List[V]) {
	l.copyCheck()
	if l == src {
		return
	}

	var head, tail *Node[V]
	for cur := src.head; cur != nil; cur = cur.next {
		n := &Node[V]{Value: cur.Value, list: l}
		if tail == nil {
			head = n
		} else {
			tail.next = n
		}
		tail = n
	}

	l.Destroy()
	l.head, l.tail, l.count = head, tail, src.count
}
