// Package hook decides when the library refresh runs.
//
// A Session is armed by library change notifications and fires its runner
// once when the host exits. The Watcher produces those notifications by
// watching the music library database with fsnotify, using an expr filter to
// decide which filesystem events count as a change.
package hook
