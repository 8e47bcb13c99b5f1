package httpserver

import (
	"net/http"
	"time"
)

// New builds the gateway's HTTP server. The read and write timeouts are
// sized for the registration document upload, which may carry up to ten
// files of ten megabytes each over a slow connection; everything else the
// gateway serves is small JSON.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       90 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
}
