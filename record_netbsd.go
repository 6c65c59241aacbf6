package dirstream

import "unsafe"

// rawDirent mirrors NetBSD's struct dirent. There is no d_off.
type rawDirent struct {
	Fileno uint64
	Reclen uint16
	Namlen uint16
	Type   uint8
	Name   [512]int8
}

var layout = direntLayout{
	ino:     fieldOf(unsafe.Offsetof(rawDirent{}.Fileno), unsafe.Sizeof(rawDirent{}.Fileno)),
	reclen:  fieldOf(unsafe.Offsetof(rawDirent{}.Reclen), unsafe.Sizeof(rawDirent{}.Reclen)),
	namlen:  fieldOf(unsafe.Offsetof(rawDirent{}.Namlen), unsafe.Sizeof(rawDirent{}.Namlen)),
	typ:     fieldOf(unsafe.Offsetof(rawDirent{}.Type), unsafe.Sizeof(rawDirent{}.Type)),
	name:    unsafe.Offsetof(rawDirent{}.Name),
	nameMax: len(rawDirent{}.Name),
}

type direntFields struct {
	fileno uint64
	reclen uint16
	namlen uint16
	typ    uint8
}

func translateRecord(rec []byte) Entry {
	fileno := layout.ino.read(rec)
	reclen := layout.reclen.read(rec)
	namlen := layout.namlen.read(rec)
	typ := layout.typ.read(rec)

	return Entry{
		fields: direntFields{
			fileno: fileno,
			reclen: uint16(reclen),
			namlen: uint16(namlen),
			typ:    uint8(typ),
		},
		name: copyName(rec, layout.name, layout.nameMax),
	}
}

func (f direntFields) inode() uint64 {
	return f.fileno
}

func (f direntFields) entryType() EntryType {
	return EntryType(f.typ)
}
