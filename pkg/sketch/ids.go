package sketch

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGen produces fresh unique id strings on demand. The core never mints
// ids itself; the generator is injected so operations stay pure.
type IDGen func() string

// NewCounterGen returns a deterministic generator producing prefix1,
// prefix2, ... Used by the script engine so evaluation is reproducible.
func NewCounterGen(prefix string) IDGen {
	var n uint64
	return func() string {
		return fmt.Sprintf("%s%d", prefix, atomic.AddUint64(&n, 1))
	}
}

// NewUUIDGen returns a generator producing random UUID ids. Used for
// interactive sessions where ids must survive merges across sketches.
func NewUUIDGen() IDGen {
	return func() string {
		return uuid.NewString()
	}
}
