package config

import "time"

// HTTP server timeouts.
//
// Read timeouts are generous because requests carry multipart PDF uploads
// from slow clients; write timeouts cover the synchronous parse of up to
// eight semesters in one request.
const (
	HTTPReadHeaderTimeout = 10 * time.Second
	HTTPReadTimeout       = 60 * time.Second
	HTTPWriteTimeout      = 60 * time.Second
	HTTPIdleTimeout       = 120 * time.Second
)
