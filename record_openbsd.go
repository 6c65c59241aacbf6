package dirstream

import "unsafe"

// rawDirent mirrors OpenBSD's struct dirent, including the private
// __d_padding bytes between d_namlen and d_name.
type rawDirent struct {
	Fileno  uint64
	Off     int64
	Reclen  uint16
	Type    uint8
	Namlen  uint8
	Padding [4]uint8
	Name    [256]int8
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
	namlen uint8
}

func translateRecord(rec []byte) Entry {
	fileno := layout.ino.read(rec)
	off := layout.off.read(rec)
	reclen := layout.reclen.read(rec)
	typ := layout.typ.read(rec)
	namlen := layout.namlen.read(rec)

	return Entry{
		fields: direntFields{
			fileno: fileno,
			off:    int64(off),
			reclen: uint16(reclen),
			typ:    uint8(typ),
			namlen: uint8(namlen),
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
