package list

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// List is the shared singly-linked list core. Concrete variants embed it
// and implement Policy on top of the node primitives.
//
// A List must not be copied after first use; use Clone or Assign.
// Mutating a copy panics. It is not safe for concurrent use.
type List[V any] struct {
	self       *List[V] // set on first mutation, detects copies by value
	head, tail *Node[V]
	count      int
}

func New[V any]() *List[V] {
	return &List[V]{}
}

func (l *List[V]) copyCheck() {
	if l.self == nil {
		l.self = l
	} else if l.self != l {
		panic("list: illegal use of List copied by value")
	}
}

func (l *List[V]) IsEmpty() bool {
	return l.count == 0
}

func (l *List[V]) Len() int {
	return l.count
}

// Front returns the first value. It panics if the list is empty.
func (l *List[V]) Front() V {
	if l.head == nil {
		panic("list: Front called on empty list")
	}
	return l.head.Value
}

// Back returns the last value. It panics if the list is empty.
func (l *List[V]) Back() V {
	if l.tail == nil {
		panic("list: Back called on empty list")
	}
	return l.tail.Value
}

// Head returns the first node, or nil.
func (l *List[V]) Head() *Node[V] {
	return l.head
}

// Tail returns the last node, or nil.
func (l *List[V]) Tail() *Node[V] {
	return l.tail
}

// Destroy releases every node and leaves l empty. Calling it on an
// empty list is a no-op. Node references held by callers are invalid
// afterwards.
func (l *List[V]) Destroy() {
	l.copyCheck()
	for l.head != nil {
		n := l.head
		l.head = n.next
		n.release()
	}
	l.tail = nil
	l.count = 0
}

// Init resets l to the empty list.
func (l *List[V]) Init() {
	l.Destroy()
}

// All iterates values from front to back.
func (l *List[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// Slice returns the values in traversal order.
func (l *List[V]) Slice() []V {
	s := make([]V, 0, l.count)
	for n := l.head; n != nil; n = n.next {
		s = append(s, n.Value)
	}
	return s
}

// Print writes the values to w in traversal order, separated by a
// single space and followed by a newline.
func (l *List[V]) Print(w io.Writer) error {
	_, err := io.WriteString(w, l.String()+"\n")
	return err
}

func (l *List[V]) String() string {
	sb := new(strings.Builder)
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			sb.WriteByte(' ')
		}
		fmt.Fprint(sb, n.Value)
	}
	return sb.String()
}

// Validate walks the chain and reports the first broken invariant.
func (l *List[V]) Validate() error {
	if l.self != nil && l.self != l {
		return fmt.Errorf("list was copied by value")
	}
	if l.count < 0 {
		return fmt.Errorf("negative count %d", l.count)
	}
	if l.count == 0 {
		if l.head != nil || l.tail != nil {
			return fmt.Errorf("empty list has head %v, tail %v", l.head != nil, l.tail != nil)
		}
		return nil
	}
	if l.head == nil || l.tail == nil {
		return fmt.Errorf("count is %d but head %v, tail %v", l.count, l.head != nil, l.tail != nil)
	}

	n := l.head
	for i := 0; i < l.count-1; i++ {
		if n.list != l {
			return fmt.Errorf("node #%d is not owned by this list", i)
		}
		if n.next == nil {
			return fmt.Errorf("chain ends at node #%d, count is %d", i, l.count)
		}
		n = n.next
	}
	if n.list != l {
		return fmt.Errorf("node #%d is not owned by this list", l.count-1)
	}
	if n.next != nil {
		return fmt.Errorf("chain is longer than count %d", l.count)
	}
	if n != l.tail {
		return fmt.Errorf("tail is not the last node of the chain")
	}
	return nil
}
