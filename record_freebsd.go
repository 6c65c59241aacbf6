package dirstream

import "unsafe"

// rawDirent mirrors struct dirent since FreeBSD 12 (ino64). The two pad
// fields are private in <sys/dirent.h>.
type rawDirent struct {
	Fileno uint64
	Off    int64
	Reclen uint16
	Type   uint8
	Pad0   uint8
	Namlen uint16
	Pad1   uint16
	Name   [256]int8
}

var layout = direntLayout{
	ino:     fieldOf(unsafe.Offsetof(rawDirent{}.Fileno), unsafe.Sizeof(rawDirent{}.Fileno)),
	off:     fieldOf(unsafe.Offsetof(rawDirent{}.Off), unsafe.Sizeof(rawDirent{}.Off)),
	reclen:  fieldOf(unsafe.Offsetof(rawDirent{}.Reclen), unsafe.Sizeof(rawDirent{}.Reclen)),
	namlen:  fieldOf(unsafe.Offsetof(rawDirent{}.Namlen), unsafe.Sizeof(rawDirent{}.Namlen)),
	typ:     fieldOf(unsafe.Offsetof(rawDirent{}.Type), unsafe.Sizeof(rawDirent{}.Type)),
	name:    unsafe.Offsetof(rawDirent{}.Name),
	nameMax: len(rawDirent{}.Name),
}

type direntFields struct {
	fileno uint64
	off    int64
	reclen uint16
	typ    uint8
	namlen uint16
}

func translateRecord(rec []byte) Entry {
	// Start from zero and assign by name; the padding is never copied.
	var f direntFields
	f.fileno = layout.ino.read(rec)
	f.off = int64(layout.off.read(rec))
	f.reclen = uint16(layout.reclen.read(rec))
	f.typ = uint8(layout.typ.read(rec))
	f.namlen = uint16(layout.namlen.read(rec))

	return Entry{
		fields: f,
		name:   copyName(rec, layout.name, layout.nameMax),
	}
}

func (f direntFields) inode() uint64 {
	return f.fileno
}

func (f direntFields) entryType() EntryType {
	return EntryType(f.typ)
}
