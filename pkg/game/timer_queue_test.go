package game

import (
	"reflect"
	"testing"
)

func TestTimerQueue_FiresInOrder(t *testing.T) {
	q := NewTimerQueue()
	var fired []string
	q.Schedule("wave-0", 3, func() { fired = append(fired, "a3") })
	q.Schedule("wave-0", 1, func() { fired = append(fired, "a1") })
	q.Schedule("wave-1", 1, func() { fired = append(fired, "b1") })

	q.Advance(0.5)
	if len(fired) != 0 {
		t.Fatalf("nothing should fire before t=1, got %v", fired)
	}
	q.Advance(0.5)
	if want := []string{"a1", "b1"}; !reflect.DeepEqual(fired, want) {
		t.Errorf("fired = %v, want %v (same time keeps insertion order)", fired, want)
	}
	q.Advance(5)
	if len(fired) != 3 || q.Pending() != 0 {
		t.Errorf("fired = %v, pending = %d", fired, q.Pending())
	}
}

func TestTimerQueue_CancelKey(t *testing.T) {
	q := NewTimerQueue()
	count := 0
	for i := 1; i <= 5; i++ {
		q.Schedule("wave-0", float64(i), func() { count++ })
	}
	q.Schedule("overlay", 1, func() {})

	q.Advance(2)
	if q.PendingFor("wave-0") != 3 {
		t.Fatalf("PendingFor = %d, want 3", q.PendingFor("wave-0"))
	}
	if n := q.CancelKey("wave-0"); n != 3 {
		t.Errorf("CancelKey = %d, want 3", n)
	}
	q.Advance(10)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestTimerQueue_CancelAndNested(t *testing.T) {
	q := NewTimerQueue()
	cancelled := false
	id := q.Schedule("x", 1, func() { cancelled = true })
	if !q.Cancel(id) || q.Cancel(id) {
		t.Error("Cancel should succeed once")
	}

	nested := false
	q.Schedule("x", 1, func() {
		q.Schedule("x", 0, func() { nested = true })
	})
	q.Advance(1)
	if cancelled || !nested {
		t.Errorf("cancelled=%v nested=%v", cancelled, nested)
	}

	q.Reset()
	if q.Now() != 0 || q.Pending() != 0 {
		t.Error("Reset should clear queue and time")
	}
}
