package sim

import "testing"

func TestPoolAcquireRelease(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)
	pool := s.Pool()

	a := pool.Acquire()
	if !a.Active() || a.Passed() {
		t.Errorf("Acquire() active=%v passed=%v, expected true/false", a.Active(), a.Passed())
	}
	if pool.Created() != 2 {
		t.Errorf("Created() = %d, expected 2", pool.Created())
	}

	pool.Release(a)
	if pool.Free() != 1 {
		t.Errorf("Free() = %d, expected 1", pool.Free())
	}

	// Releasing twice must not duplicate the pair in the free list.
	pool.Release(a)
	if pool.Free() != 1 {
		t.Errorf("Free() after double release = %d, expected 1", pool.Free())
	}

	pool.Release(nil)
	if pool.Free() != 1 {
		t.Errorf("Free() after nil release = %d, expected 1", pool.Free())
	}

	b := pool.Acquire()
	if b != a {
		t.Error("Acquire() allocated instead of reusing the free pair")
	}
	if pool.Created() != 2 {
		t.Errorf("Created() = %d, expected 2", pool.Created())
	}
	if pool.Free() != 0 {
		t.Errorf("Free() = %d, expected 0", pool.Free())
	}
}

func TestPoolLIFO(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)
	pool := s.Pool()

	a, b := pool.Acquire(), pool.Acquire()
	pool.Release(a)
	pool.Release(b)

	if got := pool.Acquire(); got != b {
		t.Error("Acquire() did not return the most recently released pair")
	}
}

func TestPoolDrain(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)
	pool := s.Pool()

	pool.Release(pool.Acquire())
	pool.Drain()

	if pool.Free() != 0 {
		t.Errorf("Free() = %d, expected 0", pool.Free())
	}
	pool.Acquire()
	if pool.Created() != 3 {
		t.Errorf("Created() = %d, expected 3", pool.Created())
	}
}

func TestReleasedPairResets(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)
	p := s.Pool().Acquire()
	p.setX(100)
	p.passed = true

	s.Pool().Release(p)

	if p.Active() || p.Passed() {
		t.Errorf("after Release active=%v passed=%v, expected false/false", p.Active(), p.Passed())
	}
	if p.X() != s.spawnX() {
		t.Errorf("X() = %v, expected %v", p.X(), s.spawnX())
	}
	if _, ok := p.Top().Box(); ok {
		t.Error("Box() ok = true for a released obstacle, expected false")
	}
}
