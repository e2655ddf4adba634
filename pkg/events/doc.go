/*
Package events is the registry's audit event broker.

Mutating operations publish an event after they commit: publishes, yanks,
ownership changes, token lifecycle, user provisioning. The broker does two
things with each event: it appends it to a bounded in-memory trail that
the management API serves for quick audits, and it fans it out to live
subscriptions, which may filter by event type. Dispatch happens on the
publishing request's goroutine and never blocks it; a subscriber that
cannot keep up loses events, and the broker counts the loss.

The retained trail is a convenience, not a durable record; the durable
audit record is the subscriber that writes every event to the log.
*/
package events
