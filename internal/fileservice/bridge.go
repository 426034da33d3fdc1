package fileservice

import (
	"imview/internal/logging"
	"imview/internal/metrics"
	"imview/internal/watch"
)

// bridge forwards native watch notifications into the funnel's
// watch-input queue. Pure transport: no classification, no filtering.
// It exits when the native channel closes, closing the queue behind it
// so the funnel observes the termination.
func (s *Service) bridge(events <-chan watch.Event) {
	for ev := range events {
		metrics.WatchEventsTotal.WithLabelValues(ev.Op.String()).Inc()
		s.watchQ.In() <- ev
	}
	s.watchQ.Close()

	if s.down.Load() {
		logging.Debug("watch bridge: stopped")
	} else {
		logging.Error("watch bridge: native watch channel closed")
	}
}
