// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Connection state, attempt number and dial count of the manager
//   - Events displayed and undecodable messages
//   - Notifications emitted, by severity
package metrics
