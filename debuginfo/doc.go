// Package debuginfo collects the debug records of many compilation units.
//
// A List maps a section.DebugID to an Entry: the unit's object container plus
// the base address each of its sections was linked at. Lists built by
// independent compilations are combined with Merge, and ids renumbered at link
// time are applied in bulk with Update. Both operations check the whole batch
// for key collisions before touching the list, so a failed call leaves it
// unchanged.
//
// A List is persisted as a CollectionHeader followed by the encoded entries in
// one pointer frame, optionally compressed:
//
//	data, err := debuginfo.Marshal(list, debuginfo.WithCompression(format.CompressionZstd))
//	...
//	list, err = debuginfo.ReadFile("kernels.dbg")
//
// A List is not safe for concurrent use.
package debuginfo
