package queue

// ring is the circular storage behind both queues.
//
// It is not synchronized; callers hold the owning queue's lock. The write
// cursor is derived as (head + n) mod len(buf), so head and n fully describe
// the unread region.
type ring[T any] struct {
	buf  []T
	head int // read cursor: index of the oldest unread item
	n    int // unread items, always in [0, len(buf)]
}

func newRing[T any](size int) ring[T] {
	return ring[T]{buf: make([]T, size)}
}

func (r *ring[T]) len() int { return r.n }

func (r *ring[T]) full() bool { return r.n == len(r.buf) }

// push writes v at the write cursor. The caller ensures the ring is not full.
func (r *ring[T]) push(v T) {
	r.buf[(r.head+r.n)%len(r.buf)] = v
	r.n++
}

// pop removes the item at the read cursor. The caller ensures n > 0.
func (r *ring[T]) pop() T {
	var zero T
	v := r.buf[r.head]
	r.buf[r.head] = zero // release references held by the slot
	r.head = (r.head + 1) % len(r.buf)
	r.n--
	return v
}

// grow doubles the storage, unwrapping the unread region to the front.
func (r *ring[T]) grow() {
	size := 2 * len(r.buf)
	if size == 0 {
		size = minQueueSize
	}
	buf := make([]T, size)
	if r.n > 0 {
		if r.head+r.n <= len(r.buf) {
			copy(buf, r.buf[r.head:r.head+r.n])
		} else {
			k := copy(buf, r.buf[r.head:])
			copy(buf[k:], r.buf[:r.n-k])
		}
	}
	r.buf = buf
	r.head = 0
}

// drain removes every unread item, oldest first.
func (r *ring[T]) drain() []T {
	if r.n == 0 {
		return nil
	}
	out := make([]T, 0, r.n)
	for r.n > 0 {
		out = append(out, r.pop())
	}
	r.head = 0
	return out
}
