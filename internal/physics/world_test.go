package physics

import "testing"

func TestDropSettles(t *testing.T) {
	w := NewWorld[string]()
	w.Drop("a")
	if got := w.Offset("a"); got != DefaultDropHeight {
		t.Fatalf("initial offset = %v, want %v", got, DefaultDropHeight)
	}

	bounced := false
	prev := w.Offset("a")
	for i := 0; i < 600 && w.Active() > 0; i++ {
		w.Step(1.0 / 60)
		h := w.Offset("a")
		if h < 0 || h > DefaultDropHeight {
			t.Fatalf("offset %v out of range at step %d", h, i)
		}
		if h > prev {
			bounced = true
		}
		prev = h
	}
	if w.Active() != 0 {
		t.Fatal("body never came to rest")
	}
	if !bounced {
		t.Error("body did not bounce")
	}
	if w.Offset("a") != 0 {
		t.Errorf("offset after rest = %v", w.Offset("a"))
	}
}

func TestLargeStepIsSubdivided(t *testing.T) {
	w := NewWorld[int]()
	w.Drop(1)
	w.Step(5)
	if w.Active() != 0 {
		t.Fatalf("body still moving after 5s, height %v", w.Offset(1))
	}
}

func TestSettlesAtLowFrameRate(t *testing.T) {
	for _, fps := range []float32{10, 20, 30, 36} {
		w := NewWorld[int]()
		w.Drop(1)
		for i := 0; i < int(fps)*10 && w.Active() > 0; i++ {
			w.Step(1 / fps)
		}
		if w.Active() != 0 {
			t.Errorf("%v fps: body still moving after 10s, height %v", fps, w.Offset(1))
		}
	}
}

func TestDisabled(t *testing.T) {
	w := NewWorld[int]()
	w.DropHeight = 0
	w.Drop(1)
	if w.Active() != 0 || w.Offset(1) != 0 {
		t.Fatal("drop with zero height started a body")
	}
}

func TestRetainAndRemove(t *testing.T) {
	w := NewWorld[int]()
	for i := 0; i < 4; i++ {
		w.Drop(i)
	}
	w.Retain(func(k int) bool { return k%2 == 0 })
	if w.Active() != 2 || w.Offset(1) != 0 || w.Offset(2) == 0 {
		t.Fatalf("after Retain: active %d", w.Active())
	}
	w.Remove(2)
	if w.Active() != 1 {
		t.Fatalf("after Remove: active %d", w.Active())
	}
	w.Step(0)
	if w.Offset(0) != DefaultDropHeight {
		t.Error("zero step moved a body")
	}
}
