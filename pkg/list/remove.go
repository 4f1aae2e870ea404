package list

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("position out of range")

// RangeError is returned by RemoveAt for a position outside [0, Len).
type RangeError struct {
	Pos int
	Len int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("remove at %d: %s [0, %d)", e.Pos, ErrOutOfRange, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// RemoveAt removes the node at the 0-based position pos. An out of range
// pos returns a *RangeError and leaves l unchanged.
func (l *List[V]) RemoveAt(pos int) error {
	l.copyCheck()
	if pos < 0 || pos >= l.count {
		return &RangeError{Pos: pos, Len: l.count}
	}

	if pos == 0 {
		n := l.head
		l.head = n.next
		if l.head == nil {
			l.tail = nil
		}
		n.release()
		l.count--
		return nil
	}

	trail, cur := l.head, l.head.next
	for i := 1; i < pos; i++ {
		trail, cur = cur, cur.next
	}
	trail.next = cur.next
	if l.tail == cur {
		l.tail = trail
	}
	cur.release()
	l.count--
	return nil
}
