package dirstream

import (
	"bytes"
	"io/fs"
)

// EntryType is the file type reported by the directory record itself.
//
// The values are the portable DT_* constants shared by Linux and the BSDs.
// Platforms whose records carry no type (Solaris, illumos) always report
// [TypeUnknown]; callers must fall back to a stat in that case.
type EntryType uint8

const (
	TypeUnknown     EntryType = 0
	TypeFIFO        EntryType = 1
	TypeCharDevice  EntryType = 2
	TypeDir         EntryType = 4
	TypeBlockDevice EntryType = 6
	TypeRegular     EntryType = 8
	TypeSymlink     EntryType = 10
	TypeSocket      EntryType = 12
	TypeWhiteout    EntryType = 14
)

func (t EntryType) String() string {
	switch t {
	case TypeFIFO:
		return "fifo"
	case TypeCharDevice:
		return "char"
	case TypeDir:
		return "dir"
	case TypeBlockDevice:
		return "block"
	case TypeRegular:
		return "file"
	case TypeSymlink:
		return "symlink"
	case TypeSocket:
		return "socket"
	case TypeWhiteout:
		return "whiteout"
	default:
		return "unknown"
	}
}

// FileMode maps t to the corresponding fs.FileMode type bits.
//
// TypeUnknown and TypeWhiteout map to fs.ModeIrregular.
func (t EntryType) FileMode() fs.FileMode {
	switch t {
	case TypeFIFO:
		return fs.ModeNamedPipe
	case TypeCharDevice:
		return fs.ModeDevice | fs.ModeCharDevice
	case TypeDir:
		return fs.ModeDir
	case TypeBlockDevice:
		return fs.ModeDevice
	case TypeRegular:
		return 0
	case TypeSymlink:
		return fs.ModeSymlink
	case TypeSocket:
		return fs.ModeSocket
	default:
		return fs.ModeIrregular
	}
}

// Entry is one directory entry, copied out of the native record.
//
// An Entry owns all of its memory. It stays valid and unchanged after the
// [Dir] that produced it is advanced, reset, or closed.
type Entry struct {
	// fields holds the scalar fields the platform's record defines.
	fields direntFields

	// name is the entry name including its NUL terminator.
	name nulTermName
}

// Name returns the entry name including its trailing NUL terminator, ready to
// be passed to *at syscalls.
//
// Each call returns a fresh copy; use [Entry.NameString] when the bytes are
// not needed.
func (e Entry) Name() []byte {
	return bytes.Clone(e.name)
}

// NameString returns the entry name without the NUL terminator.
func (e Entry) NameString() string {
	return e.name.String()
}

// Type returns the file type recorded in the directory entry.
func (e Entry) Type() EntryType {
	return e.fields.entryType()
}

// Ino returns the entry's inode (file serial) number.
func (e Entry) Ino() uint64 {
	return e.fields.inode()
}

// IsDot reports whether the entry is "." or "..".
func (e Entry) IsDot() bool {
	return e.name.isDot()
}

func (e Entry) String() string {
	return e.name.String()
}

// nulTermName is a basename that includes its trailing NUL terminator.
//
// INVARIANT: a non-empty nulTermName ends in exactly one NUL and contains no
// other NUL byte.
type nulTermName []byte

// lenWithoutNul returns the name length excluding the trailing NUL.
func (n nulTermName) lenWithoutNul() int {
	if len(n) == 0 {
		return 0
	}

	if n[len(n)-1] == 0 {
		return len(n) - 1
	}

	return len(n)
}

func (n nulTermName) String() string {
	return string(n[:n.lenWithoutNul()])
}

func (n nulTermName) isDot() bool {
	name := n[:n.lenWithoutNul()]

	return bytes.Equal(name, dotName) || bytes.Equal(name, dotDotName)
}

var (
	dotName    = []byte(".")
	dotDotName = []byte("..")
)
