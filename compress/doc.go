// Package compress provides the payload codecs of a persisted debug record
// collection.
//
// The collection header records the codec and the raw payload size, so every
// decompressor receives the exact output size up front:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	stored, err := codec.Compress(payload)
//	...
//	payload, err := codec.Decompress(stored, int(header.RawSize))
//
// Supported algorithms:
//   - None: the payload is stored as is
//   - Zstd: best ratio; klauspost/compress by default, valyala/gozstd with the
//     cgozstd build tag
//   - S2: balanced speed and ratio
//   - LZ4: LZ4 block format, fastest decompression
//
// All codecs are stateless values backed by pooled encoders and are safe for
// concurrent use.
package compress
