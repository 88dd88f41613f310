package predict

import "time"

type Config struct {
	// RequestTimeout bounds a single predict request.
	RequestTimeout time.Duration `envconfig:"TSPC_PREDICT_REQUEST_TIMEOUT" default:"30s"`
	// MaxWindows caps the number of inference windows in one request body.
	MaxWindows int `envconfig:"TSPC_PREDICT_MAX_WINDOWS" default:"4096"`
}
