package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"imview/internal/logging"
)

// DefaultDebounceWindow is how long a path's notifications are
// coalesced before one event is emitted for it.
const DefaultDebounceWindow = 10 * time.Second

// Op identifies the kind of change a watch Event reports.
type Op uint8

const (
	// Create reports a new directory entry.
	Create Op = iota + 1
	// Write reports a modified entry.
	Write
	// Remove reports a deleted entry.
	Remove
	// Rename reports an entry moved within the watched directory.
	Rename
)

// String returns the op name for logs and metrics labels.
func (op Op) String() string {
	switch op {
	case Create:
		return "create"
	case Write:
		return "write"
	case Remove:
		return "remove"
	case Rename:
		return "rename"
	default:
		return fmt.Sprintf("op(%d)", op)
	}
}

// Event is one debounced change notification.
type Event struct {
	Op   Op
	Path string
	// OldPath is the entry's previous path; set only for Rename.
	OldPath string
}

// Watcher watches a single directory, non-recursively, and emits
// debounced Events. Rapid successive changes to the same path within
// the debounce window collapse into one event, and a rename within the
// directory is reported as a single Rename rather than Remove+Create.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan Event
	window time.Duration

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// New starts watching dir. A window <= 0 selects
// DefaultDebounceWindow.
func New(dir string, window time.Duration) (*Watcher, error) {
	if window <= 0 {
		window = DefaultDebounceWindow
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:    fsw,
		events: make(chan Event),
		window: window,
		done:   make(chan struct{}),
	}
	go w.run()

	logging.Debug("watch: watching %s (debounce %v)", dir, window)
	return w, nil
}

// Events returns the notification channel. It is closed when the
// watcher shuts down.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops the watcher and closes the Events channel. Pending
// coalesced notifications are discarded.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.fsw.Close()
	})
	return w.closeErr
}

// pending is one path's coalesced state awaiting flush.
type pending struct {
	op      Op
	oldPath string
	due     time.Time
}

// renameCandidate records a native rename-away notification that may
// pair with a following create to form one Rename event.
type renameCandidate struct {
	path string
	// fromCreate marks entries that were still unflushed Creates when
	// the rename arrived; the pair then reports a plain Create at the
	// new path, since the old one was never announced.
	fromCreate bool
}

func (w *Watcher) run() {
	defer close(w.events)

	pend := make(map[string]*pending)
	var order []string
	var renames []renameCandidate

	tick := w.window / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				w.flush(pend, &order, &renames, time.Time{})
				return
			}
			w.absorb(ev, pend, &order, &renames)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				w.flush(pend, &order, &renames, time.Time{})
				return
			}
			logging.Warn("watch: %v", err)

		case now := <-ticker.C:
			if !w.flush(pend, &order, &renames, now) {
				return
			}
		}
	}
}

// absorb folds one native notification into the pending set.
func (w *Watcher) absorb(ev fsnotify.Event, pend map[string]*pending, order *[]string, renames *[]renameCandidate) {
	due := time.Now().Add(w.window)

	switch {
	case ev.Op&fsnotify.Rename != 0:
		// The entry moved away. Assume it left the directory (Remove)
		// until a create pairs with it.
		fromCreate := false
		if prev, ok := pend[ev.Name]; ok && prev.op == Create {
			fromCreate = true
			delete(pend, ev.Name)
		} else {
			w.setPending(pend, order, ev.Name, &pending{op: Remove, due: due})
		}
		*renames = append(*renames, renameCandidate{path: ev.Name, fromCreate: fromCreate})

	case ev.Op&fsnotify.Create != 0:
		if len(*renames) > 0 {
			cand := (*renames)[0]
			*renames = (*renames)[1:]
			delete(pend, cand.path)
			if cand.fromCreate {
				w.setPending(pend, order, ev.Name, &pending{op: Create, due: due})
			} else {
				w.setPending(pend, order, ev.Name, &pending{op: Rename, oldPath: cand.path, due: due})
			}
			return
		}
		op := Create
		if prev, ok := pend[ev.Name]; ok && (prev.op == Remove || prev.op == Write) {
			// Replaced within the window: the consumer already knows
			// the path, report a modification.
			op = Write
		}
		w.setPending(pend, order, ev.Name, &pending{op: op, due: due})

	case ev.Op&fsnotify.Write != 0:
		if prev, ok := pend[ev.Name]; ok {
			// A write does not demote a pending Create or Rename; the
			// consumer has not seen the path yet.
			prev.due = due
			return
		}
		w.setPending(pend, order, ev.Name, &pending{op: Write, due: due})

	case ev.Op&fsnotify.Remove != 0:
		if prev, ok := pend[ev.Name]; ok && prev.op == Create {
			// Came and went inside one window.
			delete(pend, ev.Name)
			return
		}
		w.setPending(pend, order, ev.Name, &pending{op: Remove, due: due})

	default:
		// Chmod and anything unrecognized.
	}
}

func (w *Watcher) setPending(pend map[string]*pending, order *[]string, path string, p *pending) {
	if _, known := pend[path]; !known {
		*order = append(*order, path)
	}
	pend[path] = p
}

// flush emits every pending entry due at now, preserving arrival
// order. A zero now flushes everything. Returns false if the watcher
// was closed while emitting.
func (w *Watcher) flush(pend map[string]*pending, order *[]string, renames *[]renameCandidate, now time.Time) bool {
	if len(*order) == 0 {
		return true
	}

	flushAll := now.IsZero()
	kept := (*order)[:0]
	for _, path := range *order {
		p, ok := pend[path]
		if !ok {
			continue
		}
		if !flushAll && p.due.After(now) {
			kept = append(kept, path)
			continue
		}

		delete(pend, path)
		if p.op == Remove {
			w.dropRenameCandidate(renames, path)
		}

		select {
		case w.events <- Event{Op: p.op, Path: path, OldPath: p.oldPath}:
		case <-w.done:
			return false
		}
	}
	*order = kept
	return true
}

// dropRenameCandidate forgets a rename-away path whose Remove has been
// emitted, so it can no longer pair with a later unrelated create.
func (w *Watcher) dropRenameCandidate(renames *[]renameCandidate, path string) {
	for i, c := range *renames {
		if c.path == path {
			*renames = append((*renames)[:i], (*renames)[i+1:]...)
			return
		}
	}
}
