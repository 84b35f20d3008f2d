// Package protocol
// Author: momentics <momentics@gmail.com>
//
// Binary request/response framing shared by the WebSocket server and client.
// One WebSocket binary message carries exactly one request or response.
package protocol
