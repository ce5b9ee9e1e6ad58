package bucketqueue

import "log/slog"

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used by the Engine, slog.Default() if not given
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}
