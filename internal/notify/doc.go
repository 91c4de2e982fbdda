// Package notify presents connection lifecycle notifications.
//
// Console prints a colored one-line banner per notification, Recorder keeps
// a bounded history for the status endpoint, and Multi fans a notification
// out to several notifiers.
package notify
