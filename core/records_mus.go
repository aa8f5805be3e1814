package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// TenderRecordMUS serializes TenderRecord to the MUS binary format.
// Persisted snapshots are opaque blobs; this file defines their only schema.
// The serializers are hand-written rather than generated: the schema is a
// single flat struct and a generator step is not worth carrying.
var TenderRecordMUS = tenderRecordMUS{}

type tenderRecordMUS struct{}

func (s tenderRecordMUS) Marshal(v TenderRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Organization, bs[n:])
	n += ord.String.Marshal(v.Deadline, bs[n:])
	n += ord.String.Marshal(v.EMDAmount, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += varint.Int.Marshal(int(v.Source), bs[n:])
	n += ord.String.Marshal(v.URL, bs[n:])
	n += varint.Int64.Marshal(v.FetchedAt.UnixMicro(), bs[n:])
	return
}

func (s tenderRecordMUS) Unmarshal(bs []byte) (v TenderRecord, n int, err error) {
	var n1 int
	if v.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Organization, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Deadline, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.EMDAmount, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var source int
	if source, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.Source = SourceType(source)
	if v.URL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var fetchedAt int64
	if fetchedAt, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.FetchedAt = time.UnixMicro(fetchedAt).UTC()
	return
}

func (s tenderRecordMUS) Size(v TenderRecord) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Organization)
	size += ord.String.Size(v.Deadline)
	size += ord.String.Size(v.EMDAmount)
	size += ord.String.Size(v.Description)
	size += varint.Int.Size(int(v.Source))
	size += ord.String.Size(v.URL)
	size += varint.Int64.Size(v.FetchedAt.UnixMicro())
	return
}
