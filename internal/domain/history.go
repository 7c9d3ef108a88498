package domain

// PriceRing is a fixed-capacity ring buffer of prices with O(1) eviction.
// Used for the rolling traded-price windows feeding the volatility
// estimator and the hedger's reference price.
type PriceRing struct {
	buf   []int64
	head  int // next write position
	count int
}

// NewPriceRing creates a ring holding at most capacity prices.
func NewPriceRing(capacity int) *PriceRing {
	if capacity <= 0 {
		panic("PriceRing: capacity must be positive")
	}
	return &PriceRing{buf: make([]int64, capacity)}
}

// Push appends a price, evicting the oldest once capacity is exceeded.
func (r *PriceRing) Push(price int64) {
	r.buf[r.head] = price
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Len returns the number of prices currently held.
func (r *PriceRing) Len() int { return r.count }

// Cap returns the ring's fixed capacity.
func (r *PriceRing) Cap() int { return len(r.buf) }

// At returns the i-th oldest price, 0 <= i < Len.
func (r *PriceRing) At(i int) int64 {
	start := r.head - r.count
	if start < 0 {
		start += len(r.buf)
	}
	return r.buf[(start+i)%len(r.buf)]
}

// Last returns the most recently pushed price and whether one exists.
func (r *PriceRing) Last() (int64, bool) {
	if r.count == 0 {
		return 0, false
	}
	return r.At(r.count - 1), true
}
