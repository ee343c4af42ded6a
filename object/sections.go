package object

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/section"
	"github.com/arloliu/mvpuobj/serialize"
)

// typedSection binds a catalogued section name to the container field that
// holds it.
type typedSection struct {
	name   string
	has    func(c *Container) bool
	encode func(c *Container) ([]byte, error)
	decode func(c *Container, data []byte) error
}

func marshalField[T serialize.Encodable](field optional[T]) ([]byte, error) {
	return serialize.Marshal(field.val)
}

func unmarshalField[T any, PT interface {
	*T
	serialize.Decodable
}](field *optional[T], data []byte) error {
	var v T
	if err := serialize.Unmarshal(data, PT(&v)); err != nil {
		return err
	}
	*field = some(v)

	return nil
}

// catalogue lists the typed sections in the order Save writes them; .comment
// is written last, after the raw sections.
var catalogue = []typedSection{
	{
		name:   section.DebugIDName,
		has:    (*Container).HasDebugID,
		encode: func(c *Container) ([]byte, error) { return marshalField(c.debugID) },
		decode: func(c *Container, data []byte) error { return unmarshalField(&c.debugID, data) },
	},
	{
		name:   section.SpillInfoName,
		has:    (*Container).HasSpillInfo,
		encode: func(c *Container) ([]byte, error) { return marshalField(c.spill) },
		decode: func(c *Container, data []byte) error { return unmarshalField(&c.spill, data) },
	},
	{
		name:   section.SWPInfoName,
		has:    (*Container).HasSWPInfo,
		encode: func(c *Container) ([]byte, error) { return marshalField(c.swp) },
		decode: func(c *Container, data []byte) error { return unmarshalField(&c.swp, data) },
	},
	{
		name:   section.CFGInfoName,
		has:    (*Container).HasCFGInfo,
		encode: func(c *Container) ([]byte, error) { return marshalField(c.cfg) },
		decode: func(c *Container, data []byte) error { return unmarshalField(&c.cfg, data) },
	},
	{
		name:   section.SrcInfoName,
		has:    (*Container).HasSrcInfo,
		encode: func(c *Container) ([]byte, error) { return marshalField(c.src) },
		decode: func(c *Container, data []byte) error { return unmarshalField(&c.src, data) },
	},
	{
		name:   section.SymbolInfoName,
		has:    (*Container).HasSymbolInfo,
		encode: func(c *Container) ([]byte, error) { return marshalField(c.sym) },
		decode: func(c *Container, data []byte) error { return unmarshalField(&c.sym, data) },
	},
	{
		name:   section.PMSizeName,
		has:    (*Container).HasPMSize,
		encode: func(c *Container) ([]byte, error) { return marshalField(c.pmSize) },
		decode: func(c *Container, data []byte) error { return unmarshalField(&c.pmSize, data) },
	},
	{
		name:   section.VerifyInfoName,
		has:    (*Container).HasVerifyInfo,
		encode: func(c *Container) ([]byte, error) { return marshalField(c.verify) },
		decode: func(c *Container, data []byte) error { return unmarshalField(&c.verify, data) },
	},
	{
		name:   section.LatencyName,
		has:    (*Container).HasLatencyInfo,
		encode: func(c *Container) ([]byte, error) { return marshalField(c.latency) },
		decode: func(c *Container, data []byte) error { return unmarshalField(&c.latency, data) },
	},
	{
		name:   section.CommentName,
		has:    (*Container).HasCommentInfo,
		encode: func(c *Container) ([]byte, error) { return c.comment.val.Bytes(), nil },
		decode: func(c *Container, data []byte) error {
			c.comment = some(section.ParseComment(data))
			return nil
		},
	},
}

func lookupTyped(name string) (typedSection, bool) {
	for _, ts := range catalogue {
		if ts.name == name {
			return ts, true
		}
	}

	return typedSection{}, false
}

func (c *Container) decodeTyped(ts typedSection, data []byte) error {
	if err := ts.decode(c, data); err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrMalformedSection, ts.name, err)
	}

	return nil
}

// HasSection reports whether a section named name is present, typed or raw.
func (c *Container) HasSection(name string) bool {
	if name == section.TextName {
		return c.text.ok
	}
	if ts, ok := lookupTyped(name); ok {
		return ts.has(c)
	}
	_, ok := c.raw[name]

	return ok
}

// Section returns the payload of the section named name exactly as Save
// writes it. Typed sections are encoded on the fly; raw sections and .text
// are returned without copying.
//
// Returns:
//   - []byte: Section payload
//   - error: ErrSectionNotFound when the section is absent
func (c *Container) Section(name string) ([]byte, error) {
	if name == section.TextName {
		if !c.text.ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrSectionNotFound, name)
		}

		return c.text.val, nil
	}

	if ts, ok := lookupTyped(name); ok {
		if !ts.has(c) {
			return nil, fmt.Errorf("%w: %s", errs.ErrSectionNotFound, name)
		}

		return ts.encode(c)
	}

	data, ok := c.raw[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrSectionNotFound, name)
	}

	return data, nil
}

// SectionSize returns the payload size of the section named name.
func (c *Container) SectionSize(name string) (int, error) {
	data, err := c.Section(name)
	if err != nil {
		return 0, err
	}

	return len(data), nil
}

func validateRawName(name string) error {
	if name == "" || strings.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("%w: %q", errs.ErrInvalidSectionName, name)
	}
	if section.IsCatalogued(name) {
		return fmt.Errorf("%w: %s", errs.ErrReservedSection, name)
	}

	return nil
}

// SetSection stores data as the raw section named name, replacing any
// previous payload. The container keeps data. Catalogued names are reserved
// for their typed setters.
func (c *Container) SetSection(name string, data []byte) error {
	if err := validateRawName(name); err != nil {
		return err
	}
	c.raw[name] = data

	return nil
}

// RemoveSection deletes the raw section named name and reports whether it
// existed.
func (c *Container) RemoveSection(name string) bool {
	_, ok := c.raw[name]
	delete(c.raw, name)

	return ok
}

// RawSectionNames returns the names of the raw sections in sorted order.
func (c *Container) RawSectionNames() []string {
	return slices.Sorted(maps.Keys(c.raw))
}

// SectionNames returns the names of every present section, typed or raw, in
// sorted order.
func (c *Container) SectionNames() []string {
	names := c.RawSectionNames()
	if c.text.ok {
		names = append(names, section.TextName)
	}
	for _, ts := range catalogue {
		if ts.has(c) {
			names = append(names, ts.name)
		}
	}
	slices.Sort(names)

	return names
}
