// Package section defines the typed metadata sections carried by an object
// container and the fixed header of a persisted debug record collection.
//
// # Catalogue
//
// Every typed section is optional and has a fixed name:
//
//	Name                   | Type             | Payload
//	-----------------------|------------------|-----------------------------------
//	.mvpu.dbg.id           | DebugID          | kind u8, group u16, item u16
//	.mvpu.dbg.spill        | SpillInfo        | SpillLoc records until end
//	.mvpu.dbg.swp          | SWPInfo          | SWPLoc records until end
//	.mvpu.dbg.cfg          | ControlFlowGraph | (from, to) block ranges until end
//	.mvpu.dbg.src          | SrcInfo          | map of file to included files
//	.mvpu.dbg.sym          | SymbolInfo       | map of symbol to (space, addr)
//	.mvpu.dbg.pmsize       | PMSize           | u32
//	.mvpu.dbg.verifyinfo   | VerifyInfo       | string
//	.mvpu.dbg.latency      | LatencyInfo      | LatencyLoc records until end
//	.comment               | CommentInfo      | NUL-terminated lines
//
// All payloads except .comment are streams of tagged frames written through
// the serialize package, so every record type implements serialize.Encodable
// and serialize.Decodable. Enum fields reject unknown values on decode with
// errs.ErrInvalidEnum. Maps are written in sorted key order.
//
// # Collection Header
//
// A persisted collection starts with a 24-byte little-endian header:
//
//	Bytes  | Field       | Type   | Description
//	-------|-------------|--------|----------------------------------
//	0-1    | Magic       | uint16 | 0xDB17
//	2      | Version     | uint8  | Format version (1)
//	3      | Compression | uint8  | 0x1=None, 0x2=Zstd, 0x3=S2, 0x4=LZ4
//	4-7    | EntryCount  | uint32 | Number of debug records
//	8-11   | PayloadSize | uint32 | Stored payload size
//	12-15  | RawSize     | uint32 | Payload size before compression
//	16-23  | Checksum    | uint64 | xxHash64 of the stored payload
package section
