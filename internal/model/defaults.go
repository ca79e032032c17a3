package model

import "time"

// Shared defaults used by both binaries.
const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultPageSize        = 10
	DefaultLogLimit        = 100
)
