// Package notifications posts render events to an ntfy topic.
//
// NewService returns a no-op notifier when no topic is configured, so callers
// can notify unconditionally.
package notifications
