// Package fastadapter composes any number of independent item adapters into
// one contiguous list exposed to a host list widget, translating between
// each adapter's local positions and the shared global index space. A set of
// orthogonal extensions (selection, expansion, drag, swipe) observes and
// mutates that shared space through a common event contract, and a diff
// engine replays minimal edit scripts as granular notifications.
//
// The package has no threading of its own: every operation runs to
// completion on the calling thread, and notifications triggered by a
// mutation are delivered synchronously, in order, before the mutating call
// returns. All structures are single-writer; callers must serialize access
// on one thread, typically the host widget's event loop.
//
// The [termview] subpackage provides a reference terminal host built on
// tcell.
package fastadapter
