package mem

import (
	"log/slog"

	"github.com/joshuapare/poolkit/internal/logger"
)

// SetLogger routes poolkit's diagnostics (arena leak warnings, reservation
// fallbacks, allocation tracing) to l. A nil logger restores the default
// stderr logger.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}
