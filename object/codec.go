package object

import (
	"fmt"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/serialize"
)

// Encode writes the saved image of the container as one pointer frame.
func (c *Container) Encode(e *serialize.Encoder) error {
	image, err := c.Save()
	if err != nil {
		return err
	}

	return e.PutBytes(image)
}

// Decode replaces the container with the image read from one pointer frame.
// Section payloads are copied out of the frame, so a mapped source may be
// closed afterwards.
func (c *Container) Decode(d *serialize.Decoder) error {
	v, err := d.Value()
	if err != nil {
		return err
	}
	if v.IsNull() {
		return fmt.Errorf("%w: null image frame", errs.ErrInvalidContainer)
	}

	loaded, err := Load(v.Bytes())
	if err != nil {
		return err
	}
	*c = *loaded

	return nil
}
