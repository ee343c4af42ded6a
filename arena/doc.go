// Package arena stages pointer-linked record graphs in a growable byte region
// and flattens them into self-contained, relocatable blobs.
//
// Records are laid out by offset while the graph is being built, so the arena
// may reallocate freely. Every pointer field is recorded as a fixup pair
// (field offset, target offset). Flush copies the staged bytes into a fresh
// allocation and rewrites each pointer field exactly once, turning offsets into
// absolute addresses within the new blob:
//
//	a, _ := arena.New(16)                      // 16-byte root record
//	names := a.Allocate(0, 8)                  // root+0 points at an 8-byte block
//	copy(a.Slice(names, 8), "kernel\x00\x00")
//	blob, _ := a.Flush(8, 12, arena.Omit)      // root+8: fixup count, root+12: table offset
//
// # Blob Layout
//
//	┌──────────────────────────────────────────────┐
//	│ Staged records (root record first)           │
//	│  - pointer fields hold absolute addresses    │
//	│  - optional u32 header fields written back   │
//	├──────────────────────────────────────────────┤
//	│ Fixup table (optional)                       │
//	│  - u32 pairs: field offset, target offset    │
//	└──────────────────────────────────────────────┘
//
// The table lets a blob that was written to disk be re-resolved after it is
// read back (Attach), and lets a host re-base every pointer to a device load
// address (Blob.Relocate).
//
// # Preconditions
//
// Absolute host addresses are only meaningful while the blob's byte slice is
// referenced and unmodified; only Relocate may rewrite pointer slots. The
// address computation lives in addr.go and is the only unsafe code in the
// package.
package arena
