package httpserver

import "errors"

var (
	// ErrServe indicates that the server failed while serving.
	ErrServe = errors.New("http server failed")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown http server gracefully")
)
