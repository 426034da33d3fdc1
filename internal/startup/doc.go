// Package startup loads service configuration from environment
// variables and provides the structured startup and shutdown log
// lines, keeping main small.
package startup
