package compress

// NoOpCompressor stores payloads as is.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice without copying after checking its
// size.
func (c NoOpCompressor) Decompress(data []byte, rawSize int) ([]byte, error) {
	if err := checkSize("none", len(data), rawSize); err != nil {
		return nil, err
	}

	return data, nil
}
