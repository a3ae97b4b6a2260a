package spatial

import "testing"

func TestLockFreeQueueRoundsCapacityToPowerOfTwo(t *testing.T) {
	q := NewLockFreeQueue[int](5)
	if q.Cap() != 8 {
		t.Errorf("Cap() = %d, want 8 (next power of two above 5)", q.Cap())
	}
}

func TestLockFreeQueuePushPopOrder(t *testing.T) {
	q := NewLockFreeQueue[int](4)
	for i := 1; i <= 3; i++ {
		if !q.TryPush(i) {
			t.Fatalf("TryPush(%d) failed unexpectedly", i)
		}
	}
	for i := 1; i <= 3; i++ {
		got, ok := q.TryPop()
		if !ok || got != i {
			t.Errorf("TryPop() = (%d, %v), want (%d, true)", got, ok, i)
		}
	}
}

func TestLockFreeQueueTryPushFailsWhenFull(t *testing.T) {
	q := NewLockFreeQueue[int](2)
	q.TryPush(1)
	q.TryPush(2)
	if q.TryPush(3) {
		t.Error("TryPush should fail once the queue is at capacity")
	}
}

func TestLockFreeQueueTryPopFailsWhenEmpty(t *testing.T) {
	q := NewLockFreeQueue[int](2)
	if _, ok := q.TryPop(); ok {
		t.Error("TryPop on an empty queue should report false")
	}
}

func TestLockFreeQueueDrainCollectsAvailableItems(t *testing.T) {
	q := NewLockFreeQueue[int](8)
	for i := 0; i < 5; i++ {
		q.TryPush(i)
	}
	drained := q.Drain(10)
	if len(drained) != 5 {
		t.Errorf("len(Drain(10)) = %d, want 5", len(drained))
	}
	if !q.IsEmpty() {
		t.Error("queue should be empty after draining everything")
	}
}

func TestLockFreeQueueIsFull(t *testing.T) {
	q := NewLockFreeQueue[int](2)
	q.TryPush(1)
	q.TryPush(2)
	if !q.IsFull() {
		t.Error("IsFull should report true once Len reaches Cap")
	}
}
