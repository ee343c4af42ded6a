package section

// Section names. Every catalogued section except .comment lives under the
// .mvpu.dbg prefix.
const (
	NamePrefix = ".mvpu.dbg."

	DebugIDName    = ".mvpu.dbg.id"
	SpillInfoName  = ".mvpu.dbg.spill"
	SWPInfoName    = ".mvpu.dbg.swp"
	CFGInfoName    = ".mvpu.dbg.cfg"
	SrcInfoName    = ".mvpu.dbg.src"
	SymbolInfoName = ".mvpu.dbg.sym"
	PMSizeName     = ".mvpu.dbg.pmsize"
	VerifyInfoName = ".mvpu.dbg.verifyinfo"
	LatencyName    = ".mvpu.dbg.latency"
	CommentName    = ".comment"

	TextName     = ".text"
	ShStrTabName = ".shstrtab"
)

// Catalogue lists the typed section names in the order an object container
// writes them.
var Catalogue = []string{
	DebugIDName,
	SpillInfoName,
	SWPInfoName,
	CFGInfoName,
	SrcInfoName,
	SymbolInfoName,
	PMSizeName,
	VerifyInfoName,
	LatencyName,
	CommentName,
}

// IsCatalogued reports whether name is one of the typed sections or a section
// the container layout owns (.text, .shstrtab).
func IsCatalogued(name string) bool {
	switch name {
	case DebugIDName, SpillInfoName, SWPInfoName, CFGInfoName, SrcInfoName,
		SymbolInfoName, PMSizeName, VerifyInfoName, LatencyName, CommentName,
		TextName, ShStrTabName:
		return true
	default:
		return false
	}
}

// Collection file layout.
const (
	CollectionHeaderSize = 24     // fixed header size in bytes
	MagicCollectionV1    = 0xDB17 // magic number of a persisted debug record collection
	CollectionVersion    = 1      // current collection format version
)
