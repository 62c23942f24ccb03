// Package state implements the conversational engine behind multi-step
// dialogs: typed steps, per-(user, chat) sessions with collected scratch
// data, and a dispatch table bound once at startup.
package state
