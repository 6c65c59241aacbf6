package dirstream

import "unsafe"

// rawDirent mirrors struct dirent on Solaris and illumos. d_name is declared
// as a one-byte array; the real name runs to the end of the record.
type rawDirent struct {
	Ino    uint64
	Off    int64
	Reclen uint16
	Name   [1]int8
}

// maxNameLen is MAXNAMELEN from <sys/param.h>, NUL included.
const maxNameLen = 256

var layout = direntLayout{
	ino:     fieldOf(unsafe.Offsetof(rawDirent{}.Ino), unsafe.Sizeof(rawDirent{}.Ino)),
	off:     fieldOf(unsafe.Offsetof(rawDirent{}.Off), unsafe.Sizeof(rawDirent{}.Off)),
	reclen:  fieldOf(unsafe.Offsetof(rawDirent{}.Reclen), unsafe.Sizeof(rawDirent{}.Reclen)),
	name:    unsafe.Offsetof(rawDirent{}.Name),
	nameMax: maxNameLen,
}

// direntFields has no type: these records do not carry one.
type direntFields struct {
	ino    uint64
	off    int64
	reclen uint16
}

func translateRecord(rec []byte) Entry {
	ino := layout.ino.read(rec)
	off := layout.off.read(rec)
	reclen := layout.reclen.read(rec)

	return Entry{
		fields: direntFields{
			ino:    ino,
			off:    int64(off),
			reclen: uint16(reclen),
		},
		name: copyName(rec, layout.name, layout.nameMax),
	}
}

func (f direntFields) inode() uint64 {
	return f.ino
}

func (direntFields) entryType() EntryType {
	return TypeUnknown
}
