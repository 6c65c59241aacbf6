//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly || solaris

package dirstream

// record.go holds the platform-neutral half of the record translator. Each
// record_<os>.go declares:
//   - rawDirent: the native record layout, mirrored field for field
//   - layout: where each scalar field lives in rawDirent
//   - direntFields: the owned subset of scalars that platform defines
//   - translateRecord: record view -> owned Entry
//
// Records are never converted to *rawDirent. A record is only reclen bytes
// long (often much less than unsafe.Sizeof(rawDirent{})), so a struct view
// would extend past the record, and for the last record in the buffer past
// the allocation. Fields are read from the byte view at their offsets.

import (
	"bytes"
	"encoding/binary"
	"unsafe"
)

// field locates one scalar in a native record. size 0 marks a field the
// platform's record does not have.
type field struct {
	off  uintptr
	size uintptr
}

func (f field) present() bool {
	return f.size != 0
}

// read returns the field's value in native byte order. Absent fields and
// fields extending past rec read as 0.
func (f field) read(rec []byte) uint64 {
	if f.size == 0 || uintptr(len(rec)) < f.off+f.size {
		return 0
	}

	b := rec[f.off : f.off+f.size]

	switch f.size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.NativeEndian.Uint16(b))
	case 4:
		return uint64(binary.NativeEndian.Uint32(b))
	case 8:
		return binary.NativeEndian.Uint64(b)
	default:
		panic("dirstream: unsupported dirent field size")
	}
}

// direntLayout describes rawDirent for the record translator and framing.
type direntLayout struct {
	ino    field
	off    field
	reclen field
	namlen field
	typ    field

	// name is the offset of the name region.
	name uintptr

	// nameMax is the nominal length of the name region (the d_name array
	// size, or MAXNAMELEN where the declared array is a 1-byte stub).
	nameMax int
}

const (
	// minRecordLen is the smallest record that still has a name region.
	minRecordLen = int(unsafe.Offsetof(rawDirent{}.Name))

	// minBufferSize fits at least one maximum-size record.
	minBufferSize = max(4096, int(unsafe.Sizeof(rawDirent{})))
)

// recordLen returns the length of the record at the start of buf.
func recordLen(buf []byte) (int, bool) {
	if len(buf) < minRecordLen {
		return 0, false
	}

	if layout.reclen.present() {
		return int(layout.reclen.read(buf)), true
	}

	// No d_reclen (DragonFly): the record is header + name + NUL, rounded
	// up to 8 bytes.
	namlen := layout.namlen.read(buf)

	return int((uint64(layout.name) + namlen + 1 + 7) &^ 7), true
}

// copyName copies the record's name up to and including the first NUL.
//
// The scan is bounded by both the record and nameMax, and nothing after the
// NUL is read: past it the record may not be allocated. A name region with
// no NUL in bounds is copied whole and given a terminator.
func copyName(rec []byte, nameOff uintptr, nameMax int) nulTermName {
	if uintptr(len(rec)) <= nameOff {
		return nulTermName{0}
	}

	region := rec[nameOff:]
	if len(region) > nameMax {
		region = region[:nameMax]
	}

	n := bytes.IndexByte(region, 0)
	if n < 0 {
		n = len(region)
	}

	// make zeroes the buffer, so name[n] is already the terminator.
	name := make(nulTermName, n+1)
	copy(name, region[:n])

	return name
}

func fieldOf(off, size uintptr) field {
	return field{off: off, size: size}
}
