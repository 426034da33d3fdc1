package fileservice

import (
	"image"
	"time"

	"imview/internal/codec"
	"imview/internal/logging"
	"imview/internal/metrics"
)

// decodeJob is one fire-and-forget decode submission.
type decodeJob struct {
	typ  EventType // EventThumbnailLoaded or EventImageLoaded
	path string
	size int // thumbnail box, thumbnail jobs only
}

// startPool launches n workers draining jobs. Each pool owns its
// workers exclusively; they live until the process exits.
func (s *Service) startPool(kind string, n int, jobs <-chan decodeJob) {
	for i := 0; i < n; i++ {
		go s.decodeWorker(kind, jobs)
	}
	metrics.DecodeWorkers.WithLabelValues(kind).Set(float64(n))
	logging.Debug("%s pool: %d workers", kind, n)
}

// decodeWorker executes decode jobs and posts every outcome, success
// or failure, to the operation-input queue. A failed path never
// affects sibling jobs or future submissions.
func (s *Service) decodeWorker(kind string, jobs <-chan decodeJob) {
	for job := range jobs {
		start := time.Now()

		var img *image.NRGBA
		var err error
		if job.typ == EventThumbnailLoaded {
			img, err = codec.Thumbnail(job.path, job.size)
		} else {
			img, err = codec.Decode(job.path)
		}

		metrics.DecodeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		status := "ok"
		if err != nil {
			status = "error"
			logging.Debug("%s decode failed for %s: %v", kind, job.path, err)
		}
		metrics.DecodeTotal.WithLabelValues(kind, status).Inc()

		s.opQ.In() <- opResult{typ: job.typ, path: job.path, img: img, err: err}
	}
}
