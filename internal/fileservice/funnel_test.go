package fileservice

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"imview/internal/queue"
	"imview/internal/watch"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		raw      watch.Event
		want     Event
		wantKeep bool
	}{
		{
			name:     "Create image",
			raw:      watch.Event{Op: watch.Create, Path: "/p/a.png"},
			want:     Event{Type: EventAdded, Path: "/p/a.png"},
			wantKeep: true,
		},
		{
			name:     "Create non-image dropped",
			raw:      watch.Event{Op: watch.Create, Path: "/p/a.txt"},
			wantKeep: false,
		},
		{
			name:     "Write image",
			raw:      watch.Event{Op: watch.Write, Path: "/p/a.jpg"},
			want:     Event{Type: EventModified, Path: "/p/a.jpg"},
			wantKeep: true,
		},
		{
			name:     "Write non-image dropped",
			raw:      watch.Event{Op: watch.Write, Path: "/p/a.log"},
			wantKeep: false,
		},
		{
			name:     "Remove image",
			raw:      watch.Event{Op: watch.Remove, Path: "/p/a.png"},
			want:     Event{Type: EventRemoved, Path: "/p/a.png"},
			wantKeep: true,
		},
		{
			name:     "Remove passes even for non-images",
			raw:      watch.Event{Op: watch.Remove, Path: "/p/a.txt"},
			want:     Event{Type: EventRemoved, Path: "/p/a.txt"},
			wantKeep: true,
		},
		{
			name:     "Rename unconditional",
			raw:      watch.Event{Op: watch.Rename, Path: "/p/new.txt", OldPath: "/p/old.txt"},
			want:     Event{Type: EventRenamed, Path: "/p/new.txt", OldPath: "/p/old.txt"},
			wantKeep: true,
		},
		{
			name:     "Unknown op dropped",
			raw:      watch.Event{Op: watch.Op(99), Path: "/p/a.png"},
			wantKeep: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := classify(tt.raw)
			if keep != tt.wantKeep {
				t.Fatalf("classify keep = %v, want %v", keep, tt.wantKeep)
			}
			if !keep {
				return
			}
			if got.Type != tt.want.Type || got.Path != tt.want.Path || got.OldPath != tt.want.OldPath {
				t.Errorf("classify = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// newFunnel wires a Service with hand-fed inputs for driving the
// funnel directly.
func newFunnel(notify func()) (*Service, chan watch.Event, chan opResult) {
	if notify == nil {
		notify = func() {}
	}
	s := &Service{out: queue.New[Event](), notify: notify}
	watchIn := make(chan watch.Event)
	opIn := make(chan opResult)
	go s.runFunnel(watchIn, opIn)
	return s, watchIn, opIn
}

func recvEvent(t *testing.T, s *Service) Event {
	t.Helper()
	select {
	case ev, ok := <-s.Events():
		if !ok {
			t.Fatal("output stream closed unexpectedly")
		}
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for output event")
	}
	panic("unreachable")
}

func TestFunnelRenameYieldsSingleRenamedEvent(t *testing.T) {
	s, watchIn, _ := newFunnel(nil)

	watchIn <- watch.Event{Op: watch.Rename, Path: "/p/new.png", OldPath: "/p/old.png"}
	close(watchIn)

	ev := recvEvent(t, s)
	if ev.Type != EventRenamed {
		t.Fatalf("type = %v, want EventRenamed (never Removed+Added)", ev.Type)
	}
	if ev.OldPath != "/p/old.png" || ev.Path != "/p/new.png" {
		t.Errorf("rename = %q -> %q, want /p/old.png -> /p/new.png", ev.OldPath, ev.Path)
	}

	// The funnel exits on input closure and closes the stream; no
	// second event may precede that.
	if extra, ok := <-s.Events(); ok {
		t.Fatalf("unexpected extra event %+v", extra)
	}
}

func TestFunnelDropsUnrecognizedCreates(t *testing.T) {
	s, watchIn, _ := newFunnel(nil)

	watchIn <- watch.Event{Op: watch.Create, Path: "/p/skip.txt"}
	watchIn <- watch.Event{Op: watch.Create, Path: "/p/keep.png"}

	ev := recvEvent(t, s)
	if ev.Type != EventAdded || ev.Path != "/p/keep.png" {
		t.Errorf("first forwarded event = %+v, want Added /p/keep.png", ev)
	}
}

func TestFunnelPreservesPerSourceOrder(t *testing.T) {
	s, watchIn, _ := newFunnel(nil)

	paths := []string{"/p/1.png", "/p/2.png", "/p/3.png", "/p/4.png", "/p/5.png"}
	go func() {
		for _, p := range paths {
			watchIn <- watch.Event{Op: watch.Write, Path: p}
		}
	}()

	for _, want := range paths {
		ev := recvEvent(t, s)
		if ev.Type != EventModified || ev.Path != want {
			t.Fatalf("got %v %q, want Modified %q", ev.Type, ev.Path, want)
		}
	}
}

func TestFunnelForwardsOperationResults(t *testing.T) {
	s, _, opIn := newFunnel(nil)

	decodeErr := errors.New("decode failed")
	opIn <- opResult{typ: EventImageLoaded, path: "/p/bad.png", err: decodeErr}
	opIn <- opResult{typ: EventThumbnailLoaded, path: "/p/good.png"}

	ev := recvEvent(t, s)
	if ev.Type != EventImageLoaded || ev.Path != "/p/bad.png" || !errors.Is(ev.Err, decodeErr) {
		t.Errorf("got %+v, want ImageLoaded /p/bad.png carrying the decode error", ev)
	}

	ev = recvEvent(t, s)
	if ev.Type != EventThumbnailLoaded || ev.Path != "/p/good.png" || ev.Err != nil {
		t.Errorf("got %+v, want clean ThumbnailLoaded /p/good.png", ev)
	}
}

func TestFunnelNotifiesOncePerForwardedEvent(t *testing.T) {
	var count atomic.Int64
	s, watchIn, opIn := newFunnel(func() { count.Add(1) })

	watchIn <- watch.Event{Op: watch.Create, Path: "/p/skip.txt"} // dropped, no hook
	watchIn <- watch.Event{Op: watch.Create, Path: "/p/a.png"}
	opIn <- opResult{typ: EventImageLoaded, path: "/p/a.png"}

	recvEvent(t, s)
	recvEvent(t, s)

	if got := count.Load(); got != 2 {
		t.Errorf("notify count = %d, want 2 (one per forwarded event)", got)
	}
}

func TestFunnelExitsWhenOperationInputCloses(t *testing.T) {
	s, _, opIn := newFunnel(nil)
	s.down.Store(true) // silence the expected-termination path

	close(opIn)

	select {
	case _, ok := <-s.Events():
		if ok {
			t.Fatal("expected closed stream, got event")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stream not closed after input closure")
	}
}
