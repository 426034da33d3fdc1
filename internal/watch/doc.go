// Package watch provides a debounced, non-recursive watch of a single
// directory on top of fsnotify.
//
// Raw fsnotify notifications are noisy: an editor save can produce a
// create, several writes and a rename in quick succession. The watcher
// coalesces all notifications for one path inside a fixed window into
// a single Event, and pairs a rename-away with the following create so
// an in-directory move surfaces as one Rename{old,new} instead of a
// Remove followed by a Create.
//
// Watching is strictly single-directory and non-recursive; entries in
// subdirectories are not reported.
package watch
