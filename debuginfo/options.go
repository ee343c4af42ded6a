package debuginfo

import (
	"github.com/arloliu/mvpuobj/compress"
	"github.com/arloliu/mvpuobj/format"
	"github.com/arloliu/mvpuobj/internal/options"
)

const defaultCompression = format.CompressionNone

type config struct {
	compression format.CompressionType
}

func newConfig(opts []Option) (config, error) {
	cfg := config{compression: defaultCompression}
	if err := options.Apply(&cfg, opts...); err != nil {
		return config{}, err
	}

	return cfg, nil
}

// Option configures how a list is persisted.
type Option = options.Option[*config]

// WithCompression selects the payload codec. The default stores the payload
// uncompressed.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(c *config) error {
		if _, err := compress.GetCodec(compression); err != nil {
			return err
		}
		c.compression = compression

		return nil
	})
}
