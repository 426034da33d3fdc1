package fileservice

import (
	"fmt"
	"sync/atomic"
	"time"

	"imview/internal/logging"
	"imview/internal/metrics"
	"imview/internal/queue"
	"imview/internal/watch"
	"imview/internal/workers"
)

// Options configures Start. The zero value selects defaults.
type Options struct {
	// DebounceWindow is how long the directory watch coalesces rapid
	// changes to one path. <= 0 selects watch.DefaultDebounceWindow.
	DebounceWindow time.Duration

	// ThumbnailWorkers and ImageWorkers size the two decode pools
	// independently, so thumbnail generation cannot starve full-image
	// loads. <= 0 selects the workers package defaults.
	ThumbnailWorkers int
	ImageWorkers     int
}

// Service discovers image files, optionally watches their directory
// for live changes, and decodes images and thumbnails on background
// pools. Every state change arrives as one Event on the stream
// returned by Events.
type Service struct {
	out    *queue.Queue[Event]
	watchQ *queue.Queue[watch.Event]
	opQ    *queue.Queue[opResult]

	thumbJobs *queue.Queue[decodeJob]
	imageJobs *queue.Queue[decodeJob]

	watcher *watch.Watcher
	root    string

	notify func()
	down   atomic.Bool
}

// Start resolves paths, starts the watch (when a single root is
// derivable), the decode pools and the event funnel, and seeds the
// stream with one Added event per discovered file so the initial
// snapshot has the exact same shape as live updates.
//
// notify is invoked once per event forwarded by the funnel (seed
// events excluded); pass nil for none. A resolution or watch-setup
// failure aborts construction; after a successful return, per-path
// failures only ever surface as error-carrying events.
func Start(paths []string, opts Options, notify func()) (*Service, error) {
	if notify == nil {
		notify = func() {}
	}

	root, files, err := resolvePaths(paths)
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}

	s := &Service{
		out:       queue.New[Event](),
		opQ:       queue.New[opResult](),
		thumbJobs: queue.New[decodeJob](),
		imageJobs: queue.New[decodeJob](),
		root:      root,
		notify:    notify,
	}

	// A nil channel is a permanently-empty source: the funnel's watch
	// case simply never fires without a root.
	var watchIn <-chan watch.Event
	if root != "" {
		w, err := watch.New(root, opts.DebounceWindow)
		if err != nil {
			return nil, fmt.Errorf("start watch on %s: %w", root, err)
		}
		s.watcher = w
		s.watchQ = queue.New[watch.Event]()
		watchIn = s.watchQ.Out()
		go s.bridge(w.Events())
		logging.Info("watching directory: %s", root)
		metrics.WatchActive.Set(1)
	} else {
		metrics.WatchActive.Set(0)
		logging.Info("no single root directory derivable; live watch disabled")
	}

	nThumb := opts.ThumbnailWorkers
	if nThumb <= 0 {
		nThumb = workers.ForThumbnails()
	}
	nImage := opts.ImageWorkers
	if nImage <= 0 {
		nImage = workers.ForImages()
	}
	s.startPool("thumbnail", nThumb, s.thumbJobs.Out())
	s.startPool("image", nImage, s.imageJobs.Out())

	// Seed before the funnel starts so nothing can close the output
	// side underneath us.
	for _, f := range files {
		s.out.In() <- Event{Type: EventAdded, Path: f}
	}
	metrics.DiscoveredFiles.Set(float64(len(files)))
	logging.Info("discovered %d image file(s)", len(files))

	go s.runFunnel(watchIn, s.opQ.Out())

	return s, nil
}

// Events returns the output stream. It can be drained non-blocking or
// iterated; it closes when the funnel terminates.
func (s *Service) Events() <-chan Event {
	return s.out.Out()
}

// ReadFile submits a full-image decode for path. The call returns
// immediately; the result arrives later as an EventImageLoaded.
// Submissions are never deduplicated: two calls for the same path
// produce two results.
func (s *Service) ReadFile(path string) {
	s.imageJobs.In() <- decodeJob{typ: EventImageLoaded, path: path}
}

// ReadThumbnail submits a thumbnail decode for path, scaled to fit a
// size×size box. The result arrives as an EventThumbnailLoaded.
func (s *Service) ReadThumbnail(path string, size int) {
	s.thumbJobs.In() <- decodeJob{typ: EventThumbnailLoaded, path: path, size: size}
}

// Root returns the watched directory, if any.
func (s *Service) Root() (string, bool) {
	return s.root, s.root != ""
}

// Shutdown marks the service as stopping and closes the watcher so the
// bridge, funnel and event stream wind down naturally. It does not join
// or interrupt goroutines; pending decodes still finish and emit. The
// stopping mark only downgrades the expected channel-closure errors to
// debug output.
func (s *Service) Shutdown() {
	s.down.Store(true)
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}
