package assistant

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/matsen/abook/internal/addressbook"
)

// Verbs understood by Run.
const (
	VerbHello        = "hello"
	VerbAdd          = "add"
	VerbChange       = "change"
	VerbPhone        = "phone"
	VerbAll          = "all"
	VerbAddBirthday  = "add-birthday"
	VerbShowBirthday = "show-birthday"
	VerbBirthdays    = "birthdays"
	VerbClose        = "close"
	VerbExit         = "exit"
)

// Contact is the JSON form of a record.
type Contact struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

// PhoneChange is the JSON form of a change result.
type PhoneChange struct {
	Name string `json:"name"`
	Old  string `json:"old"`
	New  string `json:"new"`
}

// UpcomingBirthdays is the JSON form of a birthdays result.
type UpcomingBirthdays struct {
	Names []string `json:"names"`
}

// Assistant runs commands against one address book.
type Assistant struct {
	book *addressbook.AddressBook
	log  *slog.Logger

	// Now returns the current time; birthdays uses its date as today.
	Now func() time.Time
}

// New returns an assistant that owns book for its lifetime.
func New(book *addressbook.AddressBook, log *slog.Logger) *Assistant {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Assistant{book: book, log: log, Now: time.Now}
}

// Book returns the address book the assistant works on.
func (a *Assistant) Book() *addressbook.AddressBook {
	return a.book
}

// ParseInput splits a line into a verb and its arguments on whitespace.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// Run executes one command. A panic inside a handler is returned as ErrUnexpected.
func (a *Assistant) Run(verb string, args []string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("command panicked", "verb", verb, "panic", r)
			res = failure(fmt.Errorf("%w: %v", ErrUnexpected, r))
		}
	}()

	a.log.Debug("running command", "verb", verb, "args", len(args))

	switch verb {
	case VerbHello:
		return success("How can I help you?", nil)
	case VerbClose, VerbExit:
		return Result{Message: "Good bye!", Quit: true}
	case VerbAdd:
		return a.AddContact(args)
	case VerbChange:
		return a.ChangeContact(args)
	case VerbPhone:
		return a.ShowPhone(args)
	case VerbAll:
		return a.ShowAll()
	case VerbAddBirthday:
		return a.AddBirthday(args)
	case VerbShowBirthday:
		return a.ShowBirthday(args)
	case VerbBirthdays:
		return a.Birthdays()
	default:
		return failure(fmt.Errorf("%w: %s", ErrInvalidCommand, verb))
	}
}

// AddContact handles "add <name> <phone>". A new contact is stored before
// its phone is validated, so an invalid phone leaves it without phones.
func (a *Assistant) AddContact(args []string) Result {
	if len(args) < 2 {
		return failure(&UsageError{Verb: VerbAdd, Hint: "Please provide both name and phone number."})
	}
	name, phone := args[0], args[1]

	record, found := a.book.Find(name)
	message := "Contact updated."
	changed := false
	if !found {
		var err error
		record, err = addressbook.NewRecord(name)
		if err != nil {
			return failure(err)
		}
		a.book.AddRecord(record)
		message = "Contact added."
		changed = true
	}

	if err := record.AddPhone(phone); err != nil {
		return Result{Err: err, Changed: changed}
	}
	return Result{Message: message, Data: contactOf(record), Changed: true}
}

// ChangeContact handles "change <name> <old> <new>". The new phone is stored
// without a format check, but it must be valid UTF-8 to survive a save.
func (a *Assistant) ChangeContact(args []string) Result {
	if len(args) < 3 {
		return failure(&UsageError{Verb: VerbChange, Hint: "Please provide name, old phone number, and new phone number."})
	}
	name, oldPhone, newPhone := args[0], args[1], args[2]

	record, found := a.book.Find(name)
	if !found {
		return failure(ErrContactNotFound)
	}
	if !utf8.ValidString(newPhone) {
		return failure(fmt.Errorf("%w: not valid UTF-8", addressbook.ErrInvalidPhone))
	}
	if err := record.UpdatePhone(oldPhone, newPhone); err != nil {
		if errors.Is(err, addressbook.ErrPhoneNotFound) {
			return failure(&PhoneNotFoundError{Name: name, Phone: oldPhone})
		}
		return failure(err)
	}
	if _, err := addressbook.NewPhone(newPhone); err != nil {
		a.log.Warn("stored phone does not match the phone format", "name", name, "phone", newPhone)
	}

	return Result{
		Message: fmt.Sprintf("Updated %s's phone from %s to %s.", name, oldPhone, newPhone),
		Data:    PhoneChange{Name: name, Old: oldPhone, New: newPhone},
		Changed: true,
	}
}

// ShowPhone handles "phone <name>".
func (a *Assistant) ShowPhone(args []string) Result {
	if len(args) < 1 {
		return failure(&UsageError{Verb: VerbPhone, Hint: "Please provide a name."})
	}
	name := args[0]

	record, found := a.book.Find(name)
	if !found {
		return failure(ErrContactNotFound)
	}
	phones := strings.Join(record.PhoneStrings(), ", ")
	return success(fmt.Sprintf("%s's phone numbers: %s", name, phones), contactOf(record))
}

// ShowAll handles "all".
func (a *Assistant) ShowAll() Result {
	records := a.book.Records()
	contacts := make([]Contact, 0, len(records))
	if len(records) == 0 {
		return success("No contacts in the address book.", contacts)
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%s: %s", r.Name(), strings.Join(r.PhoneStrings(), ", ")))
		contacts = append(contacts, contactOf(r))
	}
	return success(strings.Join(lines, "\n"), contacts)
}

// AddBirthday handles "add-birthday <name> <DD.MM.YYYY>".
func (a *Assistant) AddBirthday(args []string) Result {
	if len(args) < 2 {
		return failure(&UsageError{Verb: VerbAddBirthday, Hint: "Please provide both name and birthday."})
	}
	name, birthday := args[0], args[1]

	record, found := a.book.Find(name)
	if !found {
		return failure(ErrContactNotFound)
	}
	if err := record.AddBirthday(birthday); err != nil {
		return failure(err)
	}
	return Result{
		Message: fmt.Sprintf("Birthday for %s added.", name),
		Data:    contactOf(record),
		Changed: true,
	}
}

// ShowBirthday handles "show-birthday <name>".
func (a *Assistant) ShowBirthday(args []string) Result {
	if len(args) < 1 {
		return failure(&UsageError{Verb: VerbShowBirthday, Hint: "Please provide a name."})
	}
	name := args[0]

	record, found := a.book.Find(name)
	if !found {
		return failure(ErrContactNotFound)
	}
	bd, ok := record.Birthday()
	if !ok {
		return Result{Message: fmt.Sprintf("%s has no birthday recorded.", name), Data: contactOf(record)}
	}
	return Result{Message: fmt.Sprintf("%s's birthday is on %s", name, bd), Data: contactOf(record)}
}

// Birthdays handles "birthdays".
func (a *Assistant) Birthdays() Result {
	names := a.book.UpcomingBirthdaysFrom(a.Now())
	data := UpcomingBirthdays{Names: names}
	if len(names) == 0 {
		return success("No upcoming birthdays.", data)
	}
	return success("Upcoming birthdays: "+strings.Join(names, ", "), data)
}

func contactOf(r *addressbook.Record) Contact {
	c := Contact{Name: r.Name().String(), Phones: r.PhoneStrings()}
	if bd, ok := r.Birthday(); ok {
		c.Birthday = bd.String()
	}
	return c
}
