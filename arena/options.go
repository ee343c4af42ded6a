package arena

import (
	"fmt"

	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/internal/options"
)

// DefaultAlignment is the arena alignment used when WithAlignment is not given.
const DefaultAlignment = 4

type config struct {
	align   int
	ptrSize int
	engine  endian.EndianEngine
	base    uint64
	hasBase bool
}

func defaultConfig() config {
	return config{
		align:   DefaultAlignment,
		ptrSize: hostPointerSize,
		engine:  endian.NativeEngine(),
	}
}

// Option configures an Arena, or the blob produced by Attach.
type Option = options.Option[*config]

// WithAlignment sets the arena alignment. It must be a power of two.
func WithAlignment(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 || n&(n-1) != 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidAlignment, n)
		}
		c.align = n

		return nil
	})
}

// WithPointerSize sets the width of pointer slots, 4 or 8 bytes. The default
// is the host pointer size. Four-byte slots keep the low 32 bits of an
// address and are meant for blobs resolved against a 32-bit device base
// (see WithLoadBase).
func WithPointerSize(n int) Option {
	return options.New(func(c *config) error {
		if n != 4 && n != 8 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidPointerSize, n)
		}
		c.ptrSize = n

		return nil
	})
}

// WithEndianEngine sets the byte order of pointer slots, header fields and the
// fixup table. The default is the host byte order.
func WithEndianEngine(engine endian.EndianEngine) Option {
	return options.NoError(func(c *config) {
		c.engine = engine
	})
}

// WithLoadBase resolves pointers against base instead of the host address of
// the flushed blob.
func WithLoadBase(base uint64) Option {
	return options.NoError(func(c *config) {
		c.base = base
		c.hasBase = true
	})
}
