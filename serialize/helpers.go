package serialize

import (
	"cmp"
	"maps"
	"slices"

	"github.com/arloliu/mvpuobj/stream"
)

// preallocLimit bounds the capacity reserved from an untrusted count prefix.
const preallocLimit = 1024

// EncodeSlice writes a u32 count followed by every item.
func EncodeSlice[T Encodable](e *Encoder, items []T) error {
	if err := e.PutU32(uint32(len(items))); err != nil { //nolint:gosec
		return err
	}

	for _, item := range items {
		if err := item.Encode(e); err != nil {
			return err
		}
	}

	return nil
}

// DecodeSlice reads a slice written by EncodeSlice.
func DecodeSlice[T any, PT interface {
	*T
	Decodable
}](d *Decoder) ([]T, error) {
	count, err := d.U32()
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, min(int(count), preallocLimit))
	for range count {
		var item T
		if err := PT(&item).Decode(d); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// EncodeStream writes every item with no count prefix. The stream is expected
// to be the whole payload it lives in.
func EncodeStream[T Encodable](e *Encoder, items []T) error {
	for _, item := range items {
		if err := item.Encode(e); err != nil {
			return err
		}
	}

	return nil
}

// DecodeStream reads items until the input is exhausted.
func DecodeStream[T any, PT interface {
	*T
	Decodable
}](d *Decoder) ([]T, error) {
	var items []T
	for !d.EOF() {
		var item T
		if err := PT(&item).Decode(d); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// EncodeMap writes a u32 count followed by key/value pairs in ascending key
// order.
func EncodeMap[K cmp.Ordered, V any](
	e *Encoder,
	m map[K]V,
	putKey func(*Encoder, K) error,
	putValue func(*Encoder, V) error,
) error {
	if err := e.PutU32(uint32(len(m))); err != nil { //nolint:gosec
		return err
	}

	for _, k := range slices.Sorted(maps.Keys(m)) {
		if err := putKey(e, k); err != nil {
			return err
		}
		if err := putValue(e, m[k]); err != nil {
			return err
		}
	}

	return nil
}

// DecodeMap reads a map written by EncodeMap. A repeated key keeps the last
// value.
func DecodeMap[K comparable, V any](
	d *Decoder,
	getKey func(*Decoder) (K, error),
	getValue func(*Decoder) (V, error),
) (map[K]V, error) {
	count, err := d.U32()
	if err != nil {
		return nil, err
	}

	m := make(map[K]V, min(int(count), preallocLimit))
	for range count {
		k, err := getKey(d)
		if err != nil {
			return nil, err
		}
		v, err := getValue(d)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}

	return m, nil
}

// Marshal encodes v into a new memory stream and returns its bytes.
//
// Parameters:
//   - v: Value to encode
//   - opts: Stream options; WithAllocator controls the returned buffer
//
// Returns:
//   - []byte: Encoded bytes, nil if v wrote nothing
//   - error: The first encoding failure
func Marshal(v Encodable, opts ...stream.Option) ([]byte, error) {
	w, err := stream.NewWriter(opts...)
	if err != nil {
		return nil, err
	}
	defer w.Release()

	if err := v.Encode(NewEncoder(w)); err != nil {
		return nil, err
	}

	return w.Flush()
}

// Unmarshal decodes v from data. Bytes left over after v are ignored.
func Unmarshal(data []byte, v Decodable, opts ...stream.Option) error {
	r, err := stream.NewBytesReader(data, opts...)
	if err != nil {
		return err
	}

	return v.Decode(NewDecoder(r))
}
