package queue

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSyncQueueOrder(t *testing.T) {
	q := NewSyncQueue[int](16)
	for i := 0; i < 100; i++ {
		q.Push(i)
	}

	var got []int
	for {
		v, ok := q.TryPop()
		if !ok {
			break
		}
		got = append(got, v)
	}

	want := make([]int, 100)
	for i := range want {
		want[i] = i
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pop order mismatch (-want +got):\n%s", diff)
	}
}

func TestSyncQueueEmpty(t *testing.T) {
	q := NewSyncQueue[string](0)
	if _, ok := q.TryPop(); ok {
		t.Error("TryPop on empty queue should return false")
	}
	q.Push("a")
	if v, ok := q.TryPop(); !ok || v != "a" {
		t.Errorf("TryPop = (%q, %v), want (a, true)", v, ok)
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}

func TestSyncQueueConcurrent(t *testing.T) {
	q := NewSyncQueue[int](16)

	var wg sync.WaitGroup
	const total = 10000
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			q.Push(i)
		}
	}()

	seen := 0
	last := -1
	for seen < total {
		v, ok := q.TryPop()
		if !ok {
			continue
		}
		// 单生产者单消费者时顺序必须保序
		if v != last+1 {
			t.Fatalf("out of order pop: got %d after %d", v, last)
		}
		last = v
		seen++
	}
	wg.Wait()
}
