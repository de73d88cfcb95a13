package addressbook

import (
	"time"
)

// UpcomingDays is how many calendar days ahead UpcomingBirthdays looks.
const UpcomingDays = 7

// AddressBook maps contact names to records. Names are unique; enumeration
// follows first-insertion order.
//
// An AddressBook is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. A record already stored under that name
// is replaced and keeps its position in the enumeration order.
func (b *AddressBook) AddRecord(r *Record) {
	key := r.name.String()
	if _, exists := b.records[key]; !exists {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record stored under exactly name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.order)
}

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// UpcomingBirthdays returns the names whose birthday falls in the week
// starting today, by local wall-clock date.
func (b *AddressBook) UpcomingBirthdays() []string {
	return b.UpcomingBirthdaysFrom(time.Now())
}

// UpcomingBirthdaysFrom is UpcomingBirthdays with an explicit today.
//
// The match compares month and day only. A birthday is included when it is
// in today's month on or after today's day, or in the month of today+7 days
// on or before that day. In a 31-day month starting on the 1st this includes
// every remaining day of the month, not only the next seven.
func (b *AddressBook) UpcomingBirthdaysFrom(today time.Time) []string {
	nextWeek := today.AddDate(0, 0, UpcomingDays)
	names := []string{}
	for _, name := range b.order {
		bd, ok := b.records[name].Birthday()
		if !ok {
			continue
		}
		if (bd.Month() == today.Month() && bd.Day() >= today.Day()) ||
			(bd.Month() == nextWeek.Month() && bd.Day() <= nextWeek.Day()) {
			names = append(names, name)
		}
	}
	return names
}
