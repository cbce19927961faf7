package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies for form endpoints.
	MaxRequestBody = 1 << 20
	// AllFilterValue is the select option that disables a listing filter.
	AllFilterValue = "all"
	// RequestTimeout bounds a single handler invocation.
	RequestTimeout = 5 * time.Second
)
