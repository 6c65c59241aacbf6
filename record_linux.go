package dirstream

import "unsafe"

// rawDirent mirrors struct linux_dirent64 (linux/dirent.h):
//
//	struct linux_dirent64 {
//	    ino64_t        d_ino;    // 8 bytes  (offset 0)
//	    off64_t        d_off;    // 8 bytes  (offset 8)
//	    unsigned short d_reclen; // 2 bytes  (offset 16)
//	    unsigned char  d_type;   // 1 byte   (offset 18)
//	    char           d_name[]; // variable (offset 19)
//	};
type rawDirent struct {
	Ino    uint64
	Off    int64
	Reclen uint16
	Type   uint8
	Name   [256]int8
}

var layout = direntLayout{
	ino:     fieldOf(unsafe.Offsetof(rawDirent{}.Ino), unsafe.Sizeof(rawDirent{}.Ino)),
	off:     fieldOf(unsafe.Offsetof(rawDirent{}.Off), unsafe.Sizeof(rawDirent{}.Off)),
	reclen:  fieldOf(unsafe.Offsetof(rawDirent{}.Reclen), unsafe.Sizeof(rawDirent{}.Reclen)),
	typ:     fieldOf(unsafe.Offsetof(rawDirent{}.Type), unsafe.Sizeof(rawDirent{}.Type)),
	name:    unsafe.Offsetof(rawDirent{}.Name),
	nameMax: len(rawDirent{}.Name),
}

type direntFields struct {
	ino    uint64
	off    int64
	reclen uint16
	typ    uint8
}

func translateRecord(rec []byte) Entry {
	ino := layout.ino.read(rec)
	off := layout.off.read(rec)
	reclen := layout.reclen.read(rec)
	typ := layout.typ.read(rec)

	return Entry{
		fields: direntFields{
			ino:    ino,
			off:    int64(off),
			reclen: uint16(reclen),
			typ:    uint8(typ),
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
