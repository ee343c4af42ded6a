package stream

import (
	"fmt"

	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/internal/options"
)

// DefaultMaxFrameSize caps the length a reader accepts from a frame header
// before allocating for it.
const DefaultMaxFrameSize = 1 << 30

type config struct {
	engine       endian.EndianEngine
	alloc        Allocator
	maxFrameSize int
	mapping      bool
}

func defaultConfig() config {
	return config{
		engine:       endian.GetLittleEndianEngine(),
		alloc:        DefaultAllocator,
		maxFrameSize: DefaultMaxFrameSize,
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return config{}, err
	}

	return cfg, nil
}

// Option configures a Writer or a Reader.
type Option = options.Option[*config]

// WithEndianEngine sets the byte order of frame lengths and of the integers
// written through the serialize package. The default is little endian.
func WithEndianEngine(engine endian.EndianEngine) Option {
	return options.New(func(c *config) error {
		if engine == nil {
			return fmt.Errorf("stream: nil endian engine")
		}
		c.engine = engine

		return nil
	})
}

// WithAllocator sets the function that allocates owned pointer values on read
// and the buffer returned by Writer.Flush.
func WithAllocator(alloc Allocator) Option {
	return options.New(func(c *config) error {
		if alloc == nil {
			return fmt.Errorf("stream: nil allocator")
		}
		c.alloc = alloc

		return nil
	})
}

// WithMaxFrameSize caps the frame length a reader accepts.
func WithMaxFrameSize(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("stream: invalid max frame size %d", n)
		}
		c.maxFrameSize = n

		return nil
	})
}

// WithMapping makes a memory reader return pointer values that alias its
// source instead of owned copies. It has no effect on other readers.
func WithMapping(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.mapping = enabled
	})
}
