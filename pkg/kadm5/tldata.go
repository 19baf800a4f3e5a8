package kadm5

import "github.com/krb5go/kadm5/internal/native"

// TLDataEntry is one tagged blob attached to a principal or policy entry.
// Types below 256 are reserved for the KDC.
type TLDataEntry struct {
	Type     int16
	Contents []byte
}

// TLData is an ordered list of tagged entries.
type TLData struct {
	Entries []TLDataEntry
}

func tlDataFromRecords(recs []native.TLRecord) TLData {
	if len(recs) == 0 {
		return TLData{}
	}
	entries := make([]TLDataEntry, 0, len(recs))
	for _, r := range recs {
		contents := make([]byte, len(r.Contents))
		copy(contents, r.Contents)
		entries = append(entries, TLDataEntry{Type: r.Type, Contents: contents})
	}
	return TLData{Entries: entries}
}

func (d TLData) toRecords() []native.TLRecord {
	if len(d.Entries) == 0 {
		return nil
	}
	recs := make([]native.TLRecord, 0, len(d.Entries))
	for _, e := range d.Entries {
		contents := make([]byte, len(e.Contents))
		copy(contents, e.Contents)
		recs = append(recs, native.TLRecord{Type: e.Type, Contents: contents})
	}
	return recs
}
