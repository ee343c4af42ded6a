// Package format holds the small enumerations shared by the object container,
// the persisted debug-info format and the compression codecs.
package format

import "fmt"

type (
	// Machine is the ELF e_machine value of an object container.
	Machine uint16
	// Type is the ELF e_type value of an object container.
	Type uint16
	// CompressionType selects the payload codec of a persisted collection.
	CompressionType uint8
)

const (
	MachineMTKRV5 Machine = 0xf3   // RISC-V control core.
	MachineMTKVPU Machine = 0x2454 // Vector processing unit.
)

const (
	TypeRel  Type = 1 // Relocatable object.
	TypeExec Type = 2 // Executable.
	TypeDyn  Type = 3 // Shared object.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the payload as is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd uses Zstandard.
	CompressionS2   CompressionType = 0x3 // CompressionS2 uses S2.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 uses LZ4 block format.
)

// IsSupported reports whether m is a machine this layer knows how to carry.
func (m Machine) IsSupported() bool {
	return m == MachineMTKRV5 || m == MachineMTKVPU
}

func (m Machine) String() string {
	switch m {
	case MachineMTKRV5:
		return "MTKRV5"
	case MachineMTKVPU:
		return "MTKVPU"
	default:
		return fmt.Sprintf("Machine(%#x)", uint16(m))
	}
}

// IsValid reports whether t is one of REL, EXEC or DYN.
func (t Type) IsValid() bool {
	return t >= TypeRel && t <= TypeDyn
}

func (t Type) String() string {
	switch t {
	case TypeRel:
		return "REL"
	case TypeExec:
		return "EXEC"
	case TypeDyn:
		return "DYN"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
