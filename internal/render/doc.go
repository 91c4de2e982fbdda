// Package render turns decoded stream events into display panels.
//
// A Renderer reads the tweet fields of an event, formats the creation time,
// prepends the resulting Panel to a bounded Feed (newest first) and optionally
// prints it to a console. Everything here is a pure transform apart from the
// Feed insert and the console write.
package render
