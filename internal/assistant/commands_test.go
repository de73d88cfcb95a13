package assistant

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matsen/abook/internal/addressbook"
)

func newTestAssistant() *Assistant {
	a := New(addressbook.New(), nil)
	a.Now = func() time.Time { return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.Local) }
	return a
}

// run parses line and runs it, returning the rendered text.
func run(a *Assistant, line string) string {
	verb, args := ParseInput(line)
	return Render(a.Run(verb, args))
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		line     string
		wantVerb string
		wantArgs []string
	}{
		{"", "", nil},
		{"   ", "", nil},
		{"all", "all", []string{}},
		{"add Alice +380501234567", "add", []string{"Alice", "+380501234567"}},
		{"  change\tAlice  a   b ", "change", []string{"Alice", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			verb, args := ParseInput(tt.line)
			if verb != tt.wantVerb {
				t.Errorf("verb = %q, want %q", verb, tt.wantVerb)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestAddAndShowPhones(t *testing.T) {
	a := newTestAssistant()

	if got := run(a, "add Alice +380501234567"); got != "Contact added." {
		t.Errorf("first add = %q", got)
	}
	if got := run(a, "phone Alice"); !strings.Contains(got, "+380501234567") {
		t.Errorf("phone = %q, want it to contain the number", got)
	}

	if got := run(a, "add Alice +380661112233"); got != "Contact updated." {
		t.Errorf("second add = %q", got)
	}
	want := "Alice's phone numbers: +380501234567, +380661112233"
	if got := run(a, "phone Alice"); got != want {
		t.Errorf("phone = %q, want %q", got, want)
	}
}

func TestAddContact_ExtraArgsIgnored(t *testing.T) {
	a := newTestAssistant()
	if got := run(a, "add Alice +380501234567 extra words"); got != "Contact added." {
		t.Errorf("add = %q", got)
	}
	r, _ := a.Book().Find("Alice")
	if got := r.PhoneStrings(); len(got) != 1 {
		t.Errorf("phones = %v", got)
	}
}

func TestAddContact_InvalidPhoneKeepsNewContact(t *testing.T) {
	a := newTestAssistant()

	res := a.Run("add", []string{"Alice", "12345"})
	if !errors.Is(res.Err, addressbook.ErrInvalidPhone) {
		t.Fatalf("err = %v, want ErrInvalidPhone", res.Err)
	}
	if got := Render(res); got != "Invalid phone number format. Use +380XXXXXXXXX" {
		t.Errorf("rendered = %q", got)
	}
	if !res.Changed {
		t.Error("Changed = false, want true since the contact was stored")
	}

	r, ok := a.Book().Find("Alice")
	if !ok {
		t.Fatal("contact not stored")
	}
	if len(r.Phones()) != 0 {
		t.Errorf("phones = %v, want none", r.PhoneStrings())
	}
}

func TestChangeContact(t *testing.T) {
	a := newTestAssistant()
	run(a, "add Alice +380501234567")

	got := run(a, "change Alice +380501234567 +380991112233")
	if got != "Updated Alice's phone from +380501234567 to +380991112233." {
		t.Errorf("change = %q", got)
	}
	if got := run(a, "phone Alice"); got != "Alice's phone numbers: +380991112233" {
		t.Errorf("phone = %q", got)
	}
}

func TestChangeContact_PhoneNotFound(t *testing.T) {
	a := newTestAssistant()
	run(a, "add Alice +380501234567")

	res := a.Run("change", []string{"Alice", "+380000000000", "+380991112233"})
	if !errors.Is(res.Err, addressbook.ErrPhoneNotFound) {
		t.Fatalf("err = %v, want ErrPhoneNotFound", res.Err)
	}
	if got := Render(res); got != "Phone +380000000000 not found for Alice." {
		t.Errorf("rendered = %q", got)
	}
	if res.Changed {
		t.Error("Changed = true on failure")
	}

	r, _ := a.Book().Find("Alice")
	if got := r.PhoneStrings(); !reflect.DeepEqual(got, []string{"+380501234567"}) {
		t.Errorf("phones = %v, want unchanged", got)
	}
}

func TestChangeContact_StoresUnvalidatedPhone(t *testing.T) {
	a := newTestAssistant()
	run(a, "add Alice +380501234567")

	got := run(a, "change Alice +380501234567 0501234567")
	if got != "Updated Alice's phone from +380501234567 to 0501234567." {
		t.Errorf("change = %q", got)
	}
	if got := run(a, "phone Alice"); got != "Alice's phone numbers: 0501234567" {
		t.Errorf("phone = %q", got)
	}
}

func TestChangeContact_RejectsInvalidUTF8(t *testing.T) {
	a := newTestAssistant()
	run(a, "add Alice +380501234567")

	res := a.Run(VerbChange, []string{"Alice", "+380501234567", "\xff\xfe"})
	if !errors.Is(res.Err, addressbook.ErrInvalidPhone) {
		t.Fatalf("Err = %v, want ErrInvalidPhone", res.Err)
	}
	if res.Changed {
		t.Error("Changed = true for a rejected change")
	}
	if got := run(a, "phone Alice"); got != "Alice's phone numbers: +380501234567" {
		t.Errorf("phone = %q", got)
	}
}

func TestBirthdayCommands(t *testing.T) {
	a := newTestAssistant()
	run(a, "add Alice +380501234567")

	if got := run(a, "show-birthday Alice"); got != "Alice has no birthday recorded." {
		t.Errorf("show-birthday before add = %q", got)
	}
	if got := run(a, "add-birthday Alice 15.06.1990"); got != "Birthday for Alice added." {
		t.Errorf("add-birthday = %q", got)
	}
	if got := run(a, "show-birthday Alice"); !strings.Contains(got, "15.06.1990") {
		t.Errorf("show-birthday = %q, want it to contain 15.06.1990", got)
	}
	if got := run(a, "add-birthday Alice 1990-06-15"); got != "Invalid date format. Use DD.MM.YYYY" {
		t.Errorf("invalid add-birthday = %q", got)
	}
	if got := run(a, "show-birthday Alice"); got != "Alice's birthday is on 15.06.1990" {
		t.Errorf("show-birthday after invalid = %q", got)
	}
}

func TestBirthdays(t *testing.T) {
	a := newTestAssistant()

	if got := run(a, "birthdays"); got != "No upcoming birthdays." {
		t.Errorf("birthdays on empty book = %q", got)
	}

	run(a, "add Alice +380501234567")
	run(a, "add-birthday Alice 10.06.1990") // today's month and day
	run(a, "add Bob +380661112233")
	run(a, "add-birthday Bob 10.09.1985") // three months away
	run(a, "add Carol +380671112233")
	run(a, "add-birthday Carol 16.06.2000")

	if got := run(a, "birthdays"); got != "Upcoming birthdays: Alice, Carol" {
		t.Errorf("birthdays = %q", got)
	}

	res := a.Run("birthdays", nil)
	data, ok := res.Data.(UpcomingBirthdays)
	if !ok {
		t.Fatalf("Data = %T, want UpcomingBirthdays", res.Data)
	}
	if !reflect.DeepEqual(data.Names, []string{"Alice", "Carol"}) {
		t.Errorf("names = %v", data.Names)
	}
}

func TestShowAll(t *testing.T) {
	a := newTestAssistant()
	if got := run(a, "all"); got != "No contacts in the address book." {
		t.Errorf("all on empty book = %q", got)
	}

	run(a, "add Bob +380661112233")
	run(a, "add Alice +380501234567")
	run(a, "add Alice +380671112233")

	want := "Bob: +380661112233\nAlice: +380501234567, +380671112233"
	if got := run(a, "all"); got != want {
		t.Errorf("all = %q, want %q", got, want)
	}
}

func TestErrorMessages(t *testing.T) {
	a := newTestAssistant()

	tests := []struct {
		line string
		want string
	}{
		{"add", "Please provide both name and phone number."},
		{"add Alice", "Please provide both name and phone number."},
		{"change Alice +380501234567", "Please provide name, old phone number, and new phone number."},
		{"change Nobody a b", "Contact not found."},
		{"phone", "Please provide a name."},
		{"phone Nobody", "Contact not found."},
		{"add-birthday Alice", "Please provide both name and birthday."},
		{"add-birthday Nobody 01.01.2000", "Contact not found."},
		{"show-birthday", "Please provide a name."},
		{"show-birthday Nobody", "Contact not found."},
		{"dance", "Invalid command."},
		{"hello", "How can I help you?"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := run(a, tt.line); got != tt.want {
				t.Errorf("%q = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestMissingArgumentsIsKind(t *testing.T) {
	a := newTestAssistant()
	res := a.Run("phone", nil)
	if !errors.Is(res.Err, ErrMissingArguments) {
		t.Errorf("err = %v, want ErrMissingArguments", res.Err)
	}
	if !IsUserError(res.Err) {
		t.Error("IsUserError() = false for missing arguments")
	}
}

func TestRun_RecoversPanic(t *testing.T) {
	a := New(nil, nil) // no book: any lookup panics

	res := a.Run("phone", []string{"Alice"})
	if !errors.Is(res.Err, ErrUnexpected) {
		t.Fatalf("err = %v, want ErrUnexpected", res.Err)
	}
	if got := Render(res); !strings.HasPrefix(got, "An error occurred: ") {
		t.Errorf("rendered = %q", got)
	}
	if IsUserError(res.Err) {
		t.Error("IsUserError() = true for a panic")
	}
}

func TestQuitVerbs(t *testing.T) {
	a := newTestAssistant()
	for _, verb := range []string{"close", "exit"} {
		res := a.Run(verb, nil)
		if !res.Quit || Render(res) != "Good bye!" {
			t.Errorf("%s: Quit = %v, text = %q", verb, res.Quit, Render(res))
		}
	}
}
