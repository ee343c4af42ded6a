package section

import (
	"github.com/arloliu/mvpuobj/serialize"
)

// SrcInfo maps a kernel source file to the files it pulled in.
type SrcInfo map[string][]string

// Encode writes the source map keyed by file name.
func (s SrcInfo) Encode(e *serialize.Encoder) error {
	return serialize.EncodeMap(e, s,
		func(e *serialize.Encoder, name string) error {
			return e.PutString(name)
		},
		func(e *serialize.Encoder, files []string) error {
			if err := e.PutU32(uint32(len(files))); err != nil { //nolint:gosec
				return err
			}
			for _, f := range files {
				if err := e.PutString(f); err != nil {
					return err
				}
			}

			return nil
		},
	)
}

// Decode reads source records written by Encode.
func (s *SrcInfo) Decode(d *serialize.Decoder) error {
	m, err := serialize.DecodeMap(d,
		func(d *serialize.Decoder) (string, error) {
			return d.Str()
		},
		func(d *serialize.Decoder) ([]string, error) {
			n, err := d.U32()
			if err != nil {
				return nil, err
			}

			files := make([]string, 0, min(int(n), 64))
			for range n {
				f, err := d.Str()
				if err != nil {
					return nil, err
				}
				files = append(files, f)
			}

			return files, nil
		},
	)
	if err != nil {
		return err
	}
	*s = m

	return nil
}
