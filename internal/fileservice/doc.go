/*
Package fileservice is the concurrent core of imview: it discovers
image files from a set of input paths, optionally watches one
directory for live changes, and decodes full images and thumbnails on
bounded worker pools, delivering every resulting state change as a
single ordered stream of events.

# Architecture

Three independent producers feed one consumer-facing stream:

  - the watch bridge, forwarding debounced directory notifications
  - the thumbnail pool, posting completed thumbnail decodes
  - the full-image pool, posting completed image decodes

The event funnel multiplexes the watch-input and operation-input
queues, classifies raw notifications (dropping creates and writes on
unrecognized paths), and forwards everything in observed order. Order
is total per source; the interleaving of the two sources when both are
ready is unspecified.

All handoff uses unbounded queues, so submissions return immediately
and nothing is ever dropped under load. Per-path decode failures are
delivered as error-carrying events and never disturb sibling jobs.

Watching is deliberately limited to a single non-recursive root,
derived only when all input paths collapse to exactly one directory;
otherwise the service emits the initial snapshot and goes quiet.

Shutdown is cooperative: Shutdown marks the service as stopping and
closes the native watch, and the goroutines wind down through the
resulting chain of channel closures. Nothing is joined and nothing
times out.
*/
package fileservice
