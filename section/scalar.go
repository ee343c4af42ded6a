package section

import (
	"github.com/arloliu/mvpuobj/serialize"
)

// PMSize is the private memory size of a kernel in bytes.
type PMSize uint32

// Encode writes the size as a u32 frame.
func (s PMSize) Encode(e *serialize.Encoder) error {
	return e.PutU32(uint32(s))
}

// Decode reads a size written by Encode.
func (s *PMSize) Decode(d *serialize.Decoder) error {
	v, err := d.U32()
	*s = PMSize(v)

	return err
}

// VerifyInfo is the verification string, the names of the functions a kernel
// calls.
type VerifyInfo string

// Encode writes the verification string as one frame.
func (v VerifyInfo) Encode(e *serialize.Encoder) error {
	return e.PutString(string(v))
}

// Decode reads a verification record written by Encode.
func (v *VerifyInfo) Decode(d *serialize.Decoder) error {
	s, err := d.Str()
	*v = VerifyInfo(s)

	return err
}
