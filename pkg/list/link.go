package list

func (l *List[V]) own(n *Node[V]) {
	if n.list != l {
		panic("node does not belong to this list")
	}
}

// PushFront links a new node holding v at the front.
func (l *List[V]) PushFront(v V) *Node[V] {
	return l.InsertAfter(nil, v)
}

// PushBack links a new node holding v at the back in O(1).
func (l *List[V]) PushBack(v V) *Node[V] {
	return l.InsertAfter(l.tail, v)
}

// InsertAfter links a new node holding v right after prev.
// A nil prev inserts at the front.
func (l *List[V]) InsertAfter(prev *Node[V], v V) *Node[V] {
	l.copyCheck()
	n := &Node[V]{Value: v, list: l}
	if prev == nil {
		n.next = l.head
		l.head = n
	} else {
		l.own(prev)
		n.next = prev.next
		prev.next = n
	}
	if n.next == nil {
		l.tail = n
	}
	l.count++
	return n
}

// RemoveAfter unlinks and releases the node right after prev and returns
// its value. A nil prev removes the head. ok is false if there is no
// such node.
func (l *List[V]) RemoveAfter(prev *Node[V]) (v V, ok bool) {
	l.copyCheck()
	var n *Node[V]
	if prev == nil {
		n = l.head
		if n == nil {
			return
		}
		l.head = n.next
	} else {
		l.own(prev)
		n = prev.next
		if n == nil {
			return
		}
		prev.next = n.next
	}

	if l.tail == n {
		l.tail = prev
	}
	l.count--
	v = n.Value
	n.release()
	return v, true
}
