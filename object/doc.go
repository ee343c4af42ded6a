// Package object implements the object container: one compiled unit's text
// payload plus a closed catalogue of optional metadata sections.
//
// Every field is independently present or absent. Setting a section replaces
// any previous value for it and never touches another section:
//
//	c := object.New()
//	c.SetMachine(format.MachineMTKVPU)
//	c.SetType(format.TypeExec)
//	c.SetEntry(0x1000)
//	c.SetText(code, 8)
//	c.SetSpillInfo(section.SpillInfo{Locs: locs})
//
//	image, err := c.Save()
//	...
//	loaded, err := object.Load(image)
//	spill, ok := loaded.SpillInfo()
//
// Save writes a little-endian ELF64 image and Load accepts any ELF image whose
// machine is supported. Sections outside the catalogue are kept verbatim and
// reachable through HasSection, Section and SetSection.
//
// A Container is not safe for concurrent use.
package object
