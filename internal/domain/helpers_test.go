package domain

import (
	"io"
	"log/slog"
)

// fixedSource always yields the same value. Float64 uses the low 53 bits,
// so 0 gives 0.0 and 1<<52 gives exactly 0.5.
type fixedSource uint64

func (s fixedSource) Uint64() uint64 { return uint64(s) }

const (
	sourceZero = fixedSource(0)
	sourceHalf = fixedSource(1 << 52)
	sourceMax  = fixedSource(1<<53 - 1)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
