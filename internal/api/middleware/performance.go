package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzhttp"
)

// Compression gzips responses larger than 1 KiB for clients that accept it
func Compression(next http.Handler) http.Handler {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(1024), gzhttp.CompressionLevel(5))
	if err != nil {
		return gzhttp.GzipHandler(next)
	}
	return wrap(next)
}

// CacheControl sets Cache-Control for the API and the rendered pages.
// Static files set their own header. Error responses are never cacheable.
func CacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		var value string
		switch {
		case r.Method == http.MethodGet && (strings.HasPrefix(path, "/api/departments") ||
			strings.HasPrefix(path, "/api/doctors") ||
			strings.HasPrefix(path, "/api/timeslots")):
			value = "public, max-age=300, must-revalidate"
		case path == "/api" || strings.HasPrefix(path, "/api/"):
			value = "no-store"
		case path == "/doctors" || path == "/appointment":
			value = "private, no-cache, must-revalidate"
		default:
			next.ServeHTTP(w, r)
			return
		}

		cw := &cacheControlWriter{ResponseWriter: w, value: value}
		next.ServeHTTP(cw, r)
		if !cw.wroteHeader {
			cw.setHeader(http.StatusOK)
		}
	})
}

// cacheControlWriter picks the Cache-Control value once the status is known
type cacheControlWriter struct {
	http.ResponseWriter
	value       string
	wroteHeader bool
}

func (w *cacheControlWriter) setHeader(status int) {
	w.wroteHeader = true
	value := w.value
	if status >= http.StatusBadRequest || (status >= http.StatusMultipleChoices && status != http.StatusNotModified) {
		value = "no-store"
	}
	w.Header().Set("Cache-Control", value)
}

func (w *cacheControlWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.setHeader(status)
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *cacheControlWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.setHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *cacheControlWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *cacheControlWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// ETag answers conditional GETs of generated responses with 304 Not Modified
func ETag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		rec := &etagResponseRecorder{ResponseWriter: w, buffer: &bytes.Buffer{}}
		next.ServeHTTP(rec, r)

		status := rec.statusCode
		if status == 0 {
			status = http.StatusOK
		}

		if status == http.StatusOK {
			hash := sha256.Sum256(rec.buffer.Bytes())
			etag := `"` + hex.EncodeToString(hash[:16]) + `"`
			w.Header().Set("ETag", etag)

			if r.Header.Get("If-None-Match") == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}

		w.WriteHeader(status)
		_, _ = w.Write(rec.buffer.Bytes())
	})
}

// etagResponseRecorder buffers the response for ETag generation
type etagResponseRecorder struct {
	http.ResponseWriter
	buffer     *bytes.Buffer
	statusCode int
}

func (r *etagResponseRecorder) Write(b []byte) (int, error) {
	return r.buffer.Write(b)
}

func (r *etagResponseRecorder) WriteHeader(statusCode int) {
	if r.statusCode == 0 {
		r.statusCode = statusCode
	}
}
