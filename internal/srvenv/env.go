package srvenv

import (
	"github.com/go-tspc/tspc/internal/timestep"
)

// ClassifierProvideFn lazily loads the classifier facade.
type ClassifierProvideFn = func() (*timestep.TimeStepClassifier, error)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	classifier ClassifierProvideFn
}

func (s *SrvEnv) ProvideClassifier() ClassifierProvideFn {
	return s.classifier
}

func WithClassifier(fn ClassifierProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.classifier = fn
		return s
	}
}
