/*
Package workers determines decode pool sizes in containerized
environments.

When running in a container, the number of available CPUs may be
limited by cgroup constraints. Go 1.19+ sets GOMAXPROCS from the
container CPU limit automatically, while runtime.NumCPU() still
reports the host machine's CPU count. This package sizes pools from
GOMAXPROCS so they respect container resource limits.

Both decode pools default to min(GOMAXPROCS, 4):

	thumbWorkers := workers.ForThumbnails() // THUMBNAIL_WORKERS overrides
	imageWorkers := workers.ForImages()     // IMAGE_WORKERS overrides

The two pools are sized independently so that a burst of thumbnail
requests cannot starve full-image loads, and vice versa.
*/
package workers
