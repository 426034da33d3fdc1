package fileservice

import (
	"imview/internal/imagetypes"
	"imview/internal/logging"
	"imview/internal/metrics"
	"imview/internal/watch"
)

// runFunnel multiplexes the watch-input and operation-input queues
// into the single output stream. Items are forwarded in the order
// observed per source; when both sources are ready the select picks
// one at random.
//
// The funnel exits when either input closes. Expected during shutdown,
// an error otherwise.
func (s *Service) runFunnel(watchIn <-chan watch.Event, opIn <-chan opResult) {
	defer s.out.Close()

	for {
		select {
		case ev, ok := <-watchIn:
			if !ok {
				s.funnelExit("watch input closed")
				return
			}
			out, keep := classify(ev)
			if !keep {
				metrics.WatchEventsDroppedTotal.Inc()
				continue
			}
			s.forward(out)

		case r, ok := <-opIn:
			if !ok {
				s.funnelExit("operation input closed")
				return
			}
			// Operation results are already in consumer shape.
			s.forward(Event{Type: r.typ, Path: r.path, Image: r.img, Err: r.err})
		}
	}
}

// forward delivers one event and fires the repaint hook.
func (s *Service) forward(ev Event) {
	s.out.In() <- ev
	metrics.EventsForwardedTotal.WithLabelValues(ev.Type.String()).Inc()
	metrics.NotificationsTotal.Inc()
	s.notify()
}

func (s *Service) funnelExit(reason string) {
	if s.down.Load() {
		logging.Debug("event funnel: %s", reason)
	} else {
		logging.Error("event funnel: %s", reason)
	}
}

// classify maps a raw watch notification to its consumer-facing event.
// Creates and writes on unrecognized paths are dropped; removes and
// renames pass through unconditionally, even for paths that were never
// announced (consumers ignore unknown paths).
func classify(ev watch.Event) (Event, bool) {
	switch ev.Op {
	case watch.Create:
		if imagetypes.IsImage(ev.Path) {
			return Event{Type: EventAdded, Path: ev.Path}, true
		}
	case watch.Write:
		if imagetypes.IsImage(ev.Path) {
			return Event{Type: EventModified, Path: ev.Path}, true
		}
	case watch.Remove:
		return Event{Type: EventRemoved, Path: ev.Path}, true
	case watch.Rename:
		return Event{Type: EventRenamed, Path: ev.Path, OldPath: ev.OldPath}, true
	}
	return Event{}, false
}
