package middleware

import "net/http"

// BodyLimit caps the request body at n bytes. Reads past the limit fail
// with *http.MaxBytesError, which the upload handler turns into a 413.
func BodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			req.Body = http.MaxBytesReader(w, req.Body, n)
			next.ServeHTTP(w, req)
		})
	}
}
