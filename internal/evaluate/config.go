package evaluate

import "time"

type Config struct {
	// RequestTimeout bounds a single evaluate request.
	RequestTimeout time.Duration `envconfig:"TSPC_EVALUATE_REQUEST_TIMEOUT" default:"60s"`
	// MaxWindows caps the number of labeled windows in one request body.
	MaxWindows int `envconfig:"TSPC_EVALUATE_MAX_WINDOWS" default:"4096"`
}
