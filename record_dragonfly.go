package dirstream

import "unsafe"

// rawDirent mirrors DragonFly's struct dirent. It has no d_reclen; see
// recordLen. d_unused1/d_unused2 are private.
type rawDirent struct {
	Fileno  uint64
	Namlen  uint16
	Type    uint8
	Unused1 uint8
	Unused2 uint32
	Name    [256]int8
}

var layout = direntLayout{
	ino:     fieldOf(unsafe.Offsetof(rawDirent{}.Fileno), unsafe.Sizeof(rawDirent{}.Fileno)),
	namlen:  fieldOf(unsafe.Offsetof(rawDirent{}.Namlen), unsafe.Sizeof(rawDirent{}.Namlen)),
	typ:     fieldOf(unsafe.Offsetof(rawDirent{}.Type), unsafe.Sizeof(rawDirent{}.Type)),
	name:    unsafe.Offsetof(rawDirent{}.Name),
	nameMax: len(rawDirent{}.Name),
}

type direntFields struct {
	fileno uint64
	namlen uint16
	typ    uint8
}

func translateRecord(rec []byte) Entry {
	var f direntFields
	f.fileno = layout.ino.read(rec)
	f.namlen = uint16(layout.namlen.read(rec))
	f.typ = uint8(layout.typ.read(rec))

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
