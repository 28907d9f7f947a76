package shield

import "net/http"

// MaxRequestBody returns middleware that caps the request body at
// maxBytes for every method that carries one. The conversion endpoint
// accepts two uploads in one multipart body, so the limit applies to
// the combined size. Reads past the cap fail with http.MaxBytesError,
// which net/http turns into a 413.
func MaxRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength != 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
