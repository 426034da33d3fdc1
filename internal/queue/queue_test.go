package queue

import (
	"testing"
	"time"
)

func TestFIFOOrder(t *testing.T) {
	q := New[int]()

	const n = 100
	for i := 0; i < n; i++ {
		q.In() <- i
	}
	q.Close()

	var got []int
	for v := range q.Out() {
		got = append(got, v)
	}

	if len(got) != n {
		t.Fatalf("received %d items, want %d", len(got), n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("item %d = %d, want %d (order not preserved)", i, v, i)
		}
	}
}

func TestSendNeverBlocks(t *testing.T) {
	q := New[string]()

	// No reader attached: all sends must still complete promptly.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			q.In() <- "item"
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sends blocked with no consumer attached")
	}

	q.Close()
	count := 0
	for range q.Out() {
		count++
	}
	if count != 10000 {
		t.Errorf("drained %d items, want 10000", count)
	}
}

func TestCloseDrainsBeforeClosingOut(t *testing.T) {
	q := New[int]()
	q.In() <- 1
	q.In() <- 2
	q.Close()

	if v, ok := <-q.Out(); !ok || v != 1 {
		t.Fatalf("first receive = (%d, %v), want (1, true)", v, ok)
	}
	if v, ok := <-q.Out(); !ok || v != 2 {
		t.Fatalf("second receive = (%d, %v), want (2, true)", v, ok)
	}
	if _, ok := <-q.Out(); ok {
		t.Fatal("Out should be closed after buffer drained")
	}
}

func TestEmptyClose(t *testing.T) {
	q := New[int]()
	q.Close()

	select {
	case _, ok := <-q.Out():
		if ok {
			t.Fatal("expected closed Out with no items")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Out not closed after Close on empty queue")
	}
}

func TestInterleavedProducerConsumer(t *testing.T) {
	q := New[int]()

	go func() {
		for i := 0; i < 1000; i++ {
			q.In() <- i
		}
		q.Close()
	}()

	next := 0
	timeout := time.After(5 * time.Second)
	for {
		select {
		case v, ok := <-q.Out():
			if !ok {
				if next != 1000 {
					t.Fatalf("stream closed after %d items, want 1000", next)
				}
				return
			}
			if v != next {
				t.Fatalf("got %d, want %d", v, next)
			}
			next++
		case <-timeout:
			t.Fatal("timed out consuming queue")
		}
	}
}
