package addressbook

import (
	"fmt"
)

// RecordData is the serializable form of a Record.
type RecordData struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"` // DD.MM.YYYY, empty when unset
}

// Data returns the serializable form of r.
func (r *Record) Data() RecordData {
	d := RecordData{
		Name:   r.name.String(),
		Phones: r.PhoneStrings(),
	}
	if bd, ok := r.Birthday(); ok {
		d.Birthday = bd.String()
	}
	return d
}

// RestoreRecord rebuilds a record from its serialized form.
// Name and birthday are validated. Phones are restored verbatim, since a
// stored phone may hold text written by UpdatePhone.
func RestoreRecord(d RecordData) (*Record, error) {
	r, err := NewRecord(d.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range d.Phones {
		r.phones = append(r.phones, Phone{value: p})
	}
	if d.Birthday != "" {
		if err := r.AddBirthday(d.Birthday); err != nil {
			return nil, fmt.Errorf("record %q: %w", d.Name, err)
		}
	}
	return r, nil
}

// Snapshot returns every record in insertion order in serializable form.
func (b *AddressBook) Snapshot() []RecordData {
	out := make([]RecordData, 0, len(b.order))
	for _, r := range b.Records() {
		out = append(out, r.Data())
	}
	return out
}

// FromSnapshot builds a book from serialized records. Later entries with a
// repeated name replace earlier ones, as AddRecord does.
func FromSnapshot(data []RecordData) (*AddressBook, error) {
	b := New()
	for i, d := range data {
		r, err := RestoreRecord(d)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		b.AddRecord(r)
	}
	return b, nil
}
