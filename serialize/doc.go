// Package serialize defines the Encode/Decode protocol that lets a type travel
// through a stream without the stream knowing its shape.
//
// Fixed-width integers and booleans are written as plain frames, strings and
// byte slices as pointer frames, where an empty value becomes a null frame:
//
//	func (l SpillLoc) Encode(e *serialize.Encoder) error {
//		if err := e.PutU32(l.Addr); err != nil {
//			return err
//		}
//		return e.PutString(l.Name)
//	}
//
// The generic helpers encode slices with a u32 count prefix, streams of
// records terminated by the end of input, and maps in sorted key order so
// that equal maps always produce equal bytes.
package serialize
