// Package addressbook defines the contact data model: validated fields,
// records, and the book that owns them.
package addressbook

import (
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"
)

// Validation and lookup errors.
var (
	ErrInvalidName   = errors.New("name must be a non-empty string")
	ErrInvalidPhone  = errors.New("invalid phone number format, use +380XXXXXXXXX")
	ErrInvalidDate   = errors.New("invalid date format, use DD.MM.YYYY")
	ErrPhoneNotFound = errors.New("phone not found")
)

// BirthdayLayout is the day.month.year layout birthdays are parsed from and formatted to.
const BirthdayLayout = "02.01.2006"

// PhonePattern matches a Ukrainian mobile number: +380 followed by exactly 9 digits.
var PhonePattern = regexp.MustCompile(`^\+380\d{9}$`)

var birthdayPattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// FieldKind identifies one of the validated field variants.
type FieldKind int

const (
	KindName FieldKind = iota + 1
	KindPhone
	KindBirthday
)

func (k FieldKind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindPhone:
		return "phone"
	case KindBirthday:
		return "birthday"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// Field is a validated value. Only Name, Phone and Birthday implement it.
type Field interface {
	Kind() FieldKind
	String() string
	field()
}

// NewField builds the field of the given kind from raw text.
func NewField(kind FieldKind, text string) (Field, error) {
	switch kind {
	case KindName:
		return NewName(text)
	case KindPhone:
		return NewPhone(text)
	case KindBirthday:
		return ParseBirthday(text)
	default:
		return nil, fmt.Errorf("unknown field kind: %v", kind)
	}
}

// Name is a contact's display name and the key it is stored under.
type Name struct {
	value string
}

// NewName returns a Name, or ErrInvalidName if text is empty or not valid UTF-8.
func NewName(text string) (Name, error) {
	if text == "" || !utf8.ValidString(text) {
		return Name{}, ErrInvalidName
	}
	return Name{value: text}, nil
}

func (Name) Kind() FieldKind { return KindName }
func (n Name) String() string { return n.value }
func (Name) field() {}

// Phone is a phone number. Values built by NewPhone always match PhonePattern;
// Record.UpdatePhone may later store unchecked text.
type Phone struct {
	value string
}

// NewPhone returns a Phone, or ErrInvalidPhone unless text fully matches PhonePattern.
// No trimming or alternate formats are accepted.
func NewPhone(text string) (Phone, error) {
	if !PhonePattern.MatchString(text) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: text}, nil
}

func (Phone) Kind() FieldKind { return KindPhone }
func (p Phone) String() string { return p.value }
func (Phone) field() {}

// Birthday is a calendar date. The year is kept but ignored by birthday queries.
type Birthday struct {
	date time.Time
}

// ParseBirthday parses text in DD.MM.YYYY form. It returns ErrInvalidDate for
// any other shape or for a date that does not exist (31.04.2000, 29.02.2023).
func ParseBirthday(text string) (Birthday, error) {
	if !birthdayPattern.MatchString(text) {
		return Birthday{}, ErrInvalidDate
	}
	t, err := time.Parse(BirthdayLayout, text)
	if err != nil || t.Year() < 1 {
		return Birthday{}, ErrInvalidDate
	}
	return Birthday{date: t}, nil
}

func (Birthday) Kind() FieldKind { return KindBirthday }
func (Birthday) field() {}

// String formats the birthday as DD.MM.YYYY.
func (b Birthday) String() string { return b.date.Format(BirthdayLayout) }

// Day returns the day of the month.
func (b Birthday) Day() int { return b.date.Day() }

// Month returns the month of the year.
func (b Birthday) Month() time.Month { return b.date.Month() }

// Year returns the birth year.
func (b Birthday) Year() int { return b.date.Year() }
