package dirstream

import "unsafe"

// rawDirent mirrors struct dirent with 64-bit inodes (_DARWIN_FEATURE_64_BIT_INODE).
// d_name is MAXPATHLEN bytes, but only d_reclen of them belong to the record.
type rawDirent struct {
	Ino     uint64
	Seekoff uint64
	Reclen  uint16
	Namlen  uint16
	Type    uint8
	Name    [1024]int8
}

var layout = direntLayout{
	ino:     fieldOf(unsafe.Offsetof(rawDirent{}.Ino), unsafe.Sizeof(rawDirent{}.Ino)),
	off:     fieldOf(unsafe.Offsetof(rawDirent{}.Seekoff), unsafe.Sizeof(rawDirent{}.Seekoff)),
	reclen:  fieldOf(unsafe.Offsetof(rawDirent{}.Reclen), unsafe.Sizeof(rawDirent{}.Reclen)),
	namlen:  fieldOf(unsafe.Offsetof(rawDirent{}.Namlen), unsafe.Sizeof(rawDirent{}.Namlen)),
	typ:     fieldOf(unsafe.Offsetof(rawDirent{}.Type), unsafe.Sizeof(rawDirent{}.Type)),
	name:    unsafe.Offsetof(rawDirent{}.Name),
	nameMax: len(rawDirent{}.Name),
}

type direntFields struct {
	ino     uint64
	seekoff uint64
	reclen  uint16
	namlen  uint16
	typ     uint8
}

func translateRecord(rec []byte) Entry {
	ino := layout.ino.read(rec)
	seekoff := layout.off.read(rec)
	reclen := layout.reclen.read(rec)
	namlen := layout.namlen.read(rec)
	typ := layout.typ.read(rec)

	return Entry{
		fields: direntFields{
			ino:     ino,
			seekoff: seekoff,
			reclen:  uint16(reclen),
			namlen:  uint16(namlen),
			typ:     uint8(typ),
		},
		name: copyName(rec, layout.name, layout.nameMax),
	}
}

func (f direntFields) inode() uint64 {
	return f.ino
}

func (f direntFields) entryType() EntryType {
	return EntryType(f.typ)
}
