package addressbook

import (
	"fmt"
)

// Record is one contact: a name fixed at creation, an ordered list of phones,
// and an optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// PhoneStrings returns the phone texts in insertion order.
func (r *Record) PhoneStrings() []string {
	out := make([]string, len(r.phones))
	for i, p := range r.phones {
		out[i] = p.String()
	}
	return out
}

// AddPhone validates text and appends it. Duplicates are kept.
func (r *Record) AddPhone(text string) error {
	p, err := NewPhone(text)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// AddBirthday validates text and sets it as the birthday, replacing any previous one.
func (r *Record) AddBirthday(text string) error {
	b, err := ParseBirthday(text)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// UpdatePhone replaces the first phone equal to oldText with newText.
//
// newText is stored as given, without checking it against PhonePattern.
// Callers that need a valid number must validate it first (see NewPhone).
func (r *Record) UpdatePhone(oldText, newText string) error {
	for i := range r.phones {
		if r.phones[i].value == oldText {
			r.phones[i].value = newText
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrPhoneNotFound, oldText)
}
