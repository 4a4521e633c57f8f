// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import "log/slog"

// Option configures a conversion.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
}

// WithLogger sets the logger that receives debug output: unresolved
// reference targets and user paths whose id does not match the user.
// Without it nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(options []Option) settings {
	s := settings{logger: slog.New(slog.DiscardHandler)}
	for _, option := range options {
		option(&s)
	}
	return s
}
