package sim

// ObstaclePairPool recycles obstacle pairs through a LIFO free list so a
// long run allocates no more pairs than are ever on screen at once.
type ObstaclePairPool struct {
	session *Session
	free    []*ObstaclePair
	created int
}

func newObstaclePairPool(s *Session) *ObstaclePairPool {
	return &ObstaclePairPool{
		session: s,
		free:    make([]*ObstaclePair, 0, 4),
	}
}

// Acquire pops a free pair, or builds one when the free list is empty, and
// initialises it. It never fails.
func (pp *ObstaclePairPool) Acquire() *ObstaclePair {
	var p *ObstaclePair
	if n := len(pp.free); n > 0 {
		p = pp.free[n-1]
		pp.free[n-1] = nil
		pp.free = pp.free[:n-1]
	} else {
		p = newObstaclePair(pp.session)
		pp.created++
	}
	p.Init()
	return p
}

// Release resets a pair and pushes it onto the free list. Nil or already
// released pairs are ignored.
func (pp *ObstaclePairPool) Release(p *ObstaclePair) {
	if p == nil || !p.active {
		return
	}
	p.Reset()
	pp.free = append(pp.free, p)
}

// Free returns the number of pairs waiting in the pool.
func (pp *ObstaclePairPool) Free() int {
	return len(pp.free)
}

// Created returns how many pairs the pool has ever allocated.
func (pp *ObstaclePairPool) Created() int {
	return pp.created
}

// Drain drops every free pair.
func (pp *ObstaclePairPool) Drain() {
	clear(pp.free)
	pp.free = pp.free[:0]
}
