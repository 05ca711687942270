package pbtimegrpc

// Transport-specific wrapper types for RPC methods whose interface
// signatures don't map to a single request/response struct.
// These are used only for gRPC serialization boundaries.

// NowRequest is the (empty) request for Clock.Now.
type NowRequest struct{}

// FormatRequest carries the raw Timestamp fields for Clock.Format, so
// out-of-range and non-normalized values reach the server as-is under
// every codec.
type FormatRequest struct {
	Seconds int64 `cramberry:"1" json:"seconds"`
	Nanos   int32 `cramberry:"2" json:"nanos"`
}

// FormatResponse wraps the return value of Clock.Format.
type FormatResponse struct {
	Text string `cramberry:"1" json:"text"`
}

// ParseRequest wraps the parameter for Clock.Parse.
type ParseRequest struct {
	Text string `cramberry:"1" json:"text"`
}
