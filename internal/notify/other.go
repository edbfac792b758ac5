//go:build !darwin && !linux

// Package notify provides desktop notification support.
// This file covers platforms without a native mechanism.
package notify

// newPlatformNotifier reports no native mechanism on this platform;
// New falls back to the no-op notifier.
func newPlatformNotifier() Notifier {
	return nil
}
