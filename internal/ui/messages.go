// Package ui provides the terminal user interface for the everyday app.
// This file defines message types for the Bubble Tea command pattern. Every
// store mutation runs as a command, because each settled state commit is
// mirrored to disk by the storage auto-sync subscriber; keeping that write
// off the event loop keeps the UI responsive.
package ui

import "everyday/internal/state"

// =============================================================================
// Store Messages
// =============================================================================

// stateChangedMsg is sent after a store action settles. It carries the deep
// snapshot the UI renders from; the app never reads the store outside of
// command closures.
type stateChangedMsg struct {
	st state.State
}

// =============================================================================
// Notification Messages
// =============================================================================

// notifiedMsg is sent when a desktop notification attempt completes.
type notifiedMsg struct {
	err error
}
