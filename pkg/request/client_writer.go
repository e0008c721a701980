package request

import "net/http"

// ClientWriter wraps a http.ResponseWriter and records the status code
// written, so middleware can report it after the handler has run.
type ClientWriter struct {
	http.ResponseWriter

	// statusCode is the last status code written. Defaults to 200, matching
	// net/http's implicit WriteHeader on first Write.
	statusCode int
}

// NewClientWriter creates a new ClientWriter around w.
func NewClientWriter(w http.ResponseWriter) *ClientWriter {
	return &ClientWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader implements the http.ResponseWriter interface.
func (w *ClientWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// StatusCode returns the status code written to the client.
func (w *ClientWriter) StatusCode() int {
	return w.statusCode
}
