package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the storable types. The encoding is
// varint throughout, with child IDs stored as a length-prefixed slice.
var (
	IDMUS         = idMUS{}
	AtomTypeMUS   = atomTypeMUS{}
	OutgoingMUS   = ord.NewSliceSer[ID](IDMUS)
	AtomRecordMUS = atomRecordMUS{}
)

var (
	_ mus.Serializer[ID]         = IDMUS
	_ mus.Serializer[AtomType]   = AtomTypeMUS
	_ mus.Serializer[AtomRecord] = AtomRecordMUS
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type atomTypeMUS struct{}

func (atomTypeMUS) Marshal(t AtomType, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(t), bs)
}

func (atomTypeMUS) Unmarshal(bs []byte) (t AtomType, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return AtomType(num), n, err
}

func (atomTypeMUS) Size(t AtomType) (size int) {
	return varint.Uint64.Size(uint64(t))
}

func (atomTypeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type atomRecordMUS struct{}

func (atomRecordMUS) Marshal(rec AtomRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(rec.Id, bs)
	n += AtomTypeMUS.Marshal(rec.Type, bs[n:])
	n += ord.String.Marshal(rec.Name, bs[n:])
	n += OutgoingMUS.Marshal(rec.Outgoing, bs[n:])
	return n
}

func (atomRecordMUS) Unmarshal(bs []byte) (rec AtomRecord, n int, err error) {
	var n1 int
	rec.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return rec, n, err
	}
	rec.Type, n1, err = AtomTypeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return rec, n, err
	}
	rec.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return rec, n, err
	}
	rec.Outgoing, n1, err = OutgoingMUS.Unmarshal(bs[n:])
	n += n1
	return rec, n, err
}

func (atomRecordMUS) Size(rec AtomRecord) (size int) {
	size = IDMUS.Size(rec.Id)
	size += AtomTypeMUS.Size(rec.Type)
	size += ord.String.Size(rec.Name)
	size += OutgoingMUS.Size(rec.Outgoing)
	return size
}

func (atomRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err = AtomTypeMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = OutgoingMUS.Skip(bs[n:])
	return n + n1, err
}
