package arena

import "unsafe"

// hostAddress returns the address of the first byte of data, or 0 for an empty
// slice. The Go heap does not move objects, so the address stays valid as long
// as data is reachable.
func hostAddress(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}

	return uint64(uintptr(unsafe.Pointer(unsafe.SliceData(data))))
}

// hostPointerSize is the size of a native pointer slot.
const hostPointerSize = int(unsafe.Sizeof(uintptr(0)))
