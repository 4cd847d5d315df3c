package core

import (
	"errors"
	"math"
	"time"

	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted types. Records are stored in the MUS
// binary format: varint-encoded scalars, length-prefixed strings and
// collections, timestamps as Unix microseconds.
var (
	IDMUS           = idMUS{}
	MemoryRecordMUS = memoryRecordMUS{}
)

var errTruncated = errors.New("truncated data")

type idMUS struct{}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

type memoryRecordMUS struct{}

func (s memoryRecordMUS) Size(r MemoryRecord) int {
	size := IDMUS.Size(r.Id)
	size += sizeString(r.Text)
	size += varint.Int.Size(len(r.Metadata))
	for k, v := range r.Metadata {
		size += sizeString(k) + sizeString(v)
	}
	size += varint.Int.Size(len(r.Vector))
	for _, f := range r.Vector {
		size += varint.Uint32.Size(math.Float32bits(f))
	}
	size += varint.Int64.Size(r.InsertedAt.UnixMicro())
	return size
}

func (s memoryRecordMUS) Marshal(r MemoryRecord, bs []byte) int {
	n := IDMUS.Marshal(r.Id, bs)
	n += marshalString(r.Text, bs[n:])
	n += varint.Int.Marshal(len(r.Metadata), bs[n:])
	for k, v := range r.Metadata {
		n += marshalString(k, bs[n:])
		n += marshalString(v, bs[n:])
	}
	n += varint.Int.Marshal(len(r.Vector), bs[n:])
	for _, f := range r.Vector {
		n += varint.Uint32.Marshal(math.Float32bits(f), bs[n:])
	}
	n += varint.Int64.Marshal(r.InsertedAt.UnixMicro(), bs[n:])
	return n
}

func (s memoryRecordMUS) Unmarshal(bs []byte) (MemoryRecord, int, error) {
	var r MemoryRecord

	id, n, err := IDMUS.Unmarshal(bs)
	if err != nil {
		return r, n, err
	}
	r.Id = id

	text, c, err := unmarshalString(bs[n:])
	n += c
	if err != nil {
		return r, n, err
	}
	r.Text = text

	metaLen, c, err := varint.Int.Unmarshal(bs[n:])
	n += c
	if err != nil {
		return r, n, err
	}
	if metaLen < 0 {
		return r, n, errTruncated
	}
	if metaLen > 0 {
		r.Metadata = make(map[string]string, metaLen)
		for i := 0; i < metaLen; i++ {
			k, c, err := unmarshalString(bs[n:])
			n += c
			if err != nil {
				return r, n, err
			}
			v, c, err := unmarshalString(bs[n:])
			n += c
			if err != nil {
				return r, n, err
			}
			r.Metadata[k] = v
		}
	}

	vecLen, c, err := varint.Int.Unmarshal(bs[n:])
	n += c
	if err != nil {
		return r, n, err
	}
	if vecLen < 0 {
		return r, n, errTruncated
	}
	if vecLen > 0 {
		r.Vector = make([]float32, vecLen)
		for i := 0; i < vecLen; i++ {
			bits, c, err := varint.Uint32.Unmarshal(bs[n:])
			n += c
			if err != nil {
				return r, n, err
			}
			r.Vector[i] = math.Float32frombits(bits)
		}
	}

	micros, c, err := varint.Int64.Unmarshal(bs[n:])
	n += c
	if err != nil {
		return r, n, err
	}
	r.InsertedAt = time.UnixMicro(micros)

	return r, n, nil
}

func sizeString(s string) int {
	return varint.Int.Size(len(s)) + len(s)
}

func marshalString(s string, bs []byte) int {
	n := varint.Int.Marshal(len(s), bs)
	return n + copy(bs[n:], s)
}

func unmarshalString(bs []byte) (string, int, error) {
	l, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return "", n, err
	}
	if l < 0 || n+l > len(bs) {
		return "", n, errTruncated
	}
	return string(bs[n : n+l]), n + l, nil
}
