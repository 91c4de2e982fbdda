// Package connection implements the Connection Manager component.
//
// The Connection Manager:
//   - Keeps exactly one WebSocket subscription to the stream server alive
//   - Sends the subscribe handshake first on every opened connection
//   - Decodes each inbound JSON message and hands it to a Renderer
//   - Retries after a fixed delay while the attempt number is within budget,
//     then gives up with a terminal notification
//   - Reports warning, success and danger notifications to a Notifier
package connection
