package state

import (
	"log/slog"
)

// Load decodes a stored blob, starting from a fresh state when the blob is
// empty or cannot be decoded. A corrupt blob is logged and discarded.
func Load(data []byte, ids IDGenerator, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	if len(data) == 0 {
		return New(ids)
	}
	s, err := Decode(data, ids)
	if err != nil {
		logger.Warn("discarding unreadable stored state", "error", err)
		return New(ids)
	}
	return s
}
