package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/yndnr/connectus-go/internal/core/command"
	"github.com/yndnr/connectus-go/internal/core/domain"
	"github.com/yndnr/connectus-go/internal/core/syntax"
)

// Argument fragments, each with the leading space that separates it from
// the previous one.
const (
	nameDescAmy     = " n/Amy Bee"
	nameDescBob     = " n/Bob Choo"
	phoneDescAmy    = " p/11111111"
	phoneDescBob    = " p/22222222"
	emailDescAmy    = " e/amy@example.com"
	emailDescBob    = " e/bob@example.com"
	addressDescAmy  = " a/Block 312, Amy Street 1"
	addressDescBob  = " a/Block 123, Bobby Street 3"
	birthdayDescBob = " b/01/01/2000"
	telegramDescBob = " tg/bob_choo"

	tagDescFriend       = " r/friend"
	tagDescHusband      = " r/husband"
	moduleDescCS2101    = " mod/CS2101"
	moduleDescCS2103T   = " mod/CS2103T"
	ccaDescNES          = " cca/NES"
	ccaDescICS          = " cca/ICS"
	ccaPosDescDirector  = " ccapos/Director"
	ccaPosDescPresident = " ccapos/President"
	majorDescCS         = " maj/Computer Science"

	invalidNameDesc    = " n/James&"
	invalidPhoneDesc   = " p/911a"
	invalidEmailDesc   = " e/bob!yahoo"
	invalidAddressDesc = " a/"
	invalidTagDesc     = " r/hubby*"
	invalidModuleDesc  = " mod/CS-2101"
	invalidCcaDesc     = " cca/NES*"
	invalidCcaPosDesc  = " ccapos/Dir*"

	preambleWhitespace = "\t  \n"
	preambleNonEmpty   = "NonEmptyPreamble"
)

var cmpOpts = []cmp.Option{
	cmp.AllowUnexported(domain.Index{}),
	cmpopts.EquateEmpty(),
}

func bob() *domain.Person {
	return &domain.Person{
		Name:    "Bob Choo",
		Phone:   "22222222",
		Email:   "bob@example.com",
		Address: "Block 123, Bobby Street 3",
		Tags: domain.Tags{
			Remarks:      domain.NewTagSet("friend"),
			Modules:      domain.NewTagSet("CS2101"),
			Ccas:         domain.NewTagSet("NES"),
			CcaPositions: domain.NewTagSet("Director"),
		},
	}
}

func assertParseSuccess(t *testing.T, parse ParseFunc, args string, want command.Command) {
	t.Helper()
	got, err := parse(args)
	if err != nil {
		t.Fatalf("parse(%q) unexpected error: %v", args, err)
	}
	if diff := cmp.Diff(want, got, cmpOpts...); diff != "" {
		t.Errorf("parse(%q) mismatch (-want +got):\n%s", args, diff)
	}
}

func assertParseFailure(t *testing.T, parse ParseFunc, args string, wantMessage string) {
	t.Helper()
	_, err := parse(args)
	if err == nil {
		t.Fatalf("parse(%q) succeeded, want error %q", args, wantMessage)
	}
	if got := domain.UserMessage(err); got != wantMessage {
		t.Errorf("parse(%q) message = %q, want %q", args, got, wantMessage)
	}
}

func formatError(usage string) string {
	return domain.UserMessage(domain.InvalidCommandFormat(usage))
}

func TestParseAdd_AllFieldsPresent(t *testing.T) {
	tail := tagDescFriend + moduleDescCS2101 + ccaDescNES + ccaPosDescDirector

	t.Run("whitespace only preamble", func(t *testing.T) {
		assertParseSuccess(t, ParseAdd, preambleWhitespace+nameDescBob+phoneDescBob+emailDescBob+addressDescBob+tail,
			command.NewAddCommand(bob()))
	})

	t.Run("multiple names - last name accepted", func(t *testing.T) {
		assertParseSuccess(t, ParseAdd, nameDescAmy+nameDescBob+phoneDescBob+emailDescBob+addressDescBob+tail,
			command.NewAddCommand(bob()))
	})

	t.Run("multiple phones - last phone accepted", func(t *testing.T) {
		assertParseSuccess(t, ParseAdd, nameDescBob+phoneDescAmy+phoneDescBob+emailDescBob+addressDescBob+tail,
			command.NewAddCommand(bob()))
	})

	t.Run("multiple emails - last email accepted", func(t *testing.T) {
		assertParseSuccess(t, ParseAdd, nameDescBob+phoneDescBob+emailDescAmy+emailDescBob+addressDescBob+tail,
			command.NewAddCommand(bob()))
	})

	t.Run("multiple addresses - last address accepted", func(t *testing.T) {
		assertParseSuccess(t, ParseAdd, nameDescBob+phoneDescBob+emailDescBob+addressDescAmy+addressDescBob+tail,
			command.NewAddCommand(bob()))
	})

	t.Run("multiple tags - all accepted", func(t *testing.T) {
		want := bob()
		want.Tags.Remarks = domain.NewTagSet("friend", "husband")
		assertParseSuccess(t, ParseAdd,
			nameDescBob+phoneDescBob+emailDescBob+addressDescBob+tagDescHusband+tail,
			command.NewAddCommand(want))
	})

	t.Run("multiple modules - all accepted", func(t *testing.T) {
		want := bob()
		want.Tags.Modules = domain.NewTagSet("CS2103T", "CS2101")
		assertParseSuccess(t, ParseAdd,
			nameDescBob+phoneDescBob+emailDescBob+addressDescBob+moduleDescCS2103T+tail,
			command.NewAddCommand(want))
	})

	t.Run("multiple ccas and positions - all accepted", func(t *testing.T) {
		want := bob()
		want.Tags.Ccas = domain.NewTagSet("NES", "ICS")
		want.Tags.CcaPositions = domain.NewTagSet("Director", "President")
		assertParseSuccess(t, ParseAdd,
			nameDescBob+phoneDescBob+emailDescBob+addressDescBob+ccaDescICS+ccaPosDescPresident+tail,
			command.NewAddCommand(want))
	})

	t.Run("birthday, social media and major", func(t *testing.T) {
		want := bob()
		want.Birthday = "01/01/2000"
		want.SocialMedia.Telegram = "bob_choo"
		want.Tags.Majors = domain.NewTagSet("Computer Science")
		assertParseSuccess(t, ParseAdd,
			nameDescBob+phoneDescBob+emailDescBob+addressDescBob+birthdayDescBob+telegramDescBob+majorDescCS+tail,
			command.NewAddCommand(want))
	})
}

func TestParseAdd_OptionalFieldsMissing(t *testing.T) {
	assertParseSuccess(t, ParseAdd, nameDescAmy,
		command.NewAddCommand(&domain.Person{Name: "Amy Bee"}))

	assertParseSuccess(t, ParseAdd, nameDescAmy+phoneDescAmy+emailDescAmy+addressDescAmy,
		command.NewAddCommand(&domain.Person{
			Name:    "Amy Bee",
			Phone:   "11111111",
			Email:   "amy@example.com",
			Address: "Block 312, Amy Street 1",
		}))
}

func TestParseAdd_CompulsoryFieldMissing(t *testing.T) {
	want := formatError(command.AddUsage)

	// missing name prefix
	assertParseFailure(t, ParseAdd, " Bob Choo"+phoneDescBob+emailDescBob+addressDescBob, want)

	// all prefixes missing
	assertParseFailure(t, ParseAdd, " Bob Choo 22222222 bob@example.com", want)
}

func TestParseAdd_InvalidValue(t *testing.T) {
	rest := tagDescHusband + tagDescFriend + moduleDescCS2103T + moduleDescCS2101 + ccaDescICS + ccaPosDescDirector

	tests := []struct {
		name string
		args string
		want string
	}{
		{"invalid name", invalidNameDesc + phoneDescBob + emailDescBob + addressDescBob + rest, domain.NameConstraints},
		{"invalid phone", nameDescBob + invalidPhoneDesc + emailDescBob + addressDescBob + rest, domain.PhoneConstraints},
		{"invalid email", nameDescBob + phoneDescBob + invalidEmailDesc + addressDescBob + rest, domain.EmailConstraints},
		{"invalid address", nameDescBob + phoneDescBob + emailDescBob + invalidAddressDesc + rest, domain.AddressConstraints},
		{"invalid tag", nameDescBob + phoneDescBob + emailDescBob + addressDescBob + invalidTagDesc + rest, domain.RemarkConstraints},
		{"invalid module", nameDescBob + invalidModuleDesc + moduleDescCS2101, domain.ModuleConstraints},
		{"invalid cca", nameDescBob + invalidCcaDesc + ccaPosDescDirector, domain.CcaConstraints},
		{"invalid cca position", nameDescBob + ccaDescICS + invalidCcaPosDesc, domain.CcaPositionConstraints},
		{"two invalid values, only first reported", invalidNameDesc + phoneDescBob + emailDescBob + invalidAddressDesc, domain.NameConstraints},
		{"non-empty preamble", preambleNonEmpty + nameDescBob + phoneDescBob + emailDescBob + addressDescBob + rest, formatError(command.AddUsage)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertParseFailure(t, ParseAdd, tt.args, tt.want)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestParseEdit(t *testing.T) {
	t.Run("some fields", func(t *testing.T) {
		assertParseSuccess(t, ParseEdit, " 2"+phoneDescBob+emailDescAmy,
			command.NewEditCommand(domain.IndexFromOneBased(2), &command.EditDescriptor{
				Phone: ptr(domain.Phone("22222222")),
				Email: ptr(domain.Email("amy@example.com")),
			}))
	})

	t.Run("empty optional fields clear", func(t *testing.T) {
		assertParseSuccess(t, ParseEdit, " 1 p/ tg/ b/",
			command.NewEditCommand(domain.IndexFromOneBased(1), &command.EditDescriptor{
				Phone:    ptr(domain.Phone("")),
				Birthday: ptr(domain.Birthday("")),
				Telegram: ptr(domain.Telegram("")),
			}))
	})

	t.Run("tags replace and clear categories", func(t *testing.T) {
		assertParseSuccess(t, ParseEdit, " 3 mod/CS2103T mod/CS2101 r/",
			command.NewEditCommand(domain.IndexFromOneBased(3), &command.EditDescriptor{
				Tags: map[domain.TagKind]domain.TagSet{
					domain.TagModule: domain.NewTagSet("CS2101", "CS2103T"),
					domain.TagRemark: domain.NewTagSet(),
				},
			}))
	})

	t.Run("last value wins", func(t *testing.T) {
		assertParseSuccess(t, ParseEdit, " 1"+nameDescAmy+nameDescBob,
			command.NewEditCommand(domain.IndexFromOneBased(1), &command.EditDescriptor{
				Name: ptr(domain.Name("Bob Choo")),
			}))
	})

	failures := []struct {
		name string
		args string
		want string
	}{
		{"missing index", nameDescBob, formatError(command.EditUsage)},
		{"zero index", " 0" + nameDescBob, formatError(command.EditUsage)},
		{"negative index", " -5" + nameDescBob, formatError(command.EditUsage)},
		{"invalid preamble", " 1 some random string" + nameDescBob, formatError(command.EditUsage)},
		{"nothing edited", " 1", "At least one field to edit must be provided."},
		{"empty name", " 1 n/", domain.NameConstraints},
		{"invalid phone", " 1" + invalidPhoneDesc, domain.PhoneConstraints},
		{"invalid phone then valid email", " 1" + invalidPhoneDesc + emailDescAmy, domain.PhoneConstraints},
		{"invalid tag", " 1 mod/CS2101 mod/", domain.ModuleConstraints},
		{"invalid instagram", " 1 ig/..x", domain.InstagramConstraints},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			assertParseFailure(t, ParseEdit, tt.args, tt.want)
		})
	}

	// An invalid value overridden by a later valid one is accepted.
	t.Run("invalid value followed by valid value", func(t *testing.T) {
		assertParseSuccess(t, ParseEdit, " 1"+invalidPhoneDesc+phoneDescBob,
			command.NewEditCommand(domain.IndexFromOneBased(1), &command.EditDescriptor{
				Phone: ptr(domain.Phone("22222222")),
			}))
	})
}

func TestParseDelete(t *testing.T) {
	assertParseSuccess(t, ParseDelete, " 1", command.NewDeleteCommand(domain.IndexFromOneBased(1)))
	assertParseFailure(t, ParseDelete, " a", formatError(command.DeleteUsage))
	assertParseFailure(t, ParseDelete, "", formatError(command.DeleteUsage))
	assertParseFailure(t, ParseDelete, " 99999999999", formatError(command.DeleteUsage))

	_, err := ParseDelete(" 0")
	if !errors.Is(err, domain.ErrInvalidCommandFormat) {
		t.Errorf("err = %v, want %v", err, domain.ErrInvalidCommandFormat)
	}
	if !errors.Is(err, domain.ErrInvalidIndex) {
		t.Errorf("err should wrap %v", domain.ErrInvalidIndex)
	}
}

func TestParseSearch(t *testing.T) {
	assertParseSuccess(t, ParseSearch, " alice  bob",
		command.NewSearchCommand(&command.SearchPredicate{
			Keywords:      []string{"alice", "bob"},
			FieldKeywords: map[syntax.Prefix][]string{},
		}))

	assertParseSuccess(t, ParseSearch, " alice mod/CS2103T mod/CS2101 n/Yeoh Lim",
		command.NewSearchCommand(&command.SearchPredicate{
			Keywords: []string{"alice"},
			FieldKeywords: map[syntax.Prefix][]string{
				syntax.Module: {"CS2103T", "CS2101"},
				syntax.Name:   {"Yeoh", "Lim"},
			},
		}))

	assertParseFailure(t, ParseSearch, "", formatError(command.SearchUsage))
	assertParseFailure(t, ParseSearch, "   ", formatError(command.SearchUsage))
	assertParseFailure(t, ParseSearch, " n/ p/", formatError(command.SearchUsage))
}

func TestParseHelp(t *testing.T) {
	assertParseSuccess(t, ParseHelp, "", command.NewHelpCommand(""))
	assertParseSuccess(t, ParseHelp, "  ", command.NewHelpCommand(""))

	for word, usage := range command.Usages {
		assertParseSuccess(t, ParseHelp, " "+word+" ", command.NewHelpCommand(usage))
	}

	assertParseFailure(t, ParseHelp, " unknown", formatError(command.HelpUsage))
	assertParseFailure(t, ParseHelp, " add edit", formatError(command.HelpUsage))
}

func TestParseAddTag(t *testing.T) {
	assertParseSuccess(t, ParseAddTag, " 1 mod/CS2103T cca/NUS Hackers mod/CS2101",
		command.NewAddTagCommand(domain.IndexFromOneBased(1), domain.Tags{
			Modules: domain.NewTagSet("CS2101", "CS2103T"),
			Ccas:    domain.NewTagSet("NUS Hackers"),
		}))

	assertParseFailure(t, ParseAddTag, " mod/CS2103T", formatError(command.AddTagUsage))
	assertParseFailure(t, ParseAddTag, " 1", "At least one tag must be provided.")
	assertParseFailure(t, ParseAddTag, " 1 mod/", domain.ModuleConstraints)
	assertParseFailure(t, ParseAddTag, " 1 maj/C++", domain.MajorConstraints)

	// Non-tag prefixes are not recognised and end up in the preamble.
	assertParseFailure(t, ParseAddTag, " 1 n/Alice", formatError(command.AddTagUsage))
}

func TestParseDeleteTag(t *testing.T) {
	assertParseSuccess(t, ParseDeleteTag, " 1 mod/2",
		command.NewDeleteTagCommand(domain.IndexFromOneBased(1), domain.TagModule, domain.IndexFromOneBased(2)))
	assertParseSuccess(t, ParseDeleteTag, " 3 ccapos/1",
		command.NewDeleteTagCommand(domain.IndexFromOneBased(3), domain.TagCcaPosition, domain.IndexFromOneBased(1)))

	want := formatError(command.DeleteTagUsage)
	assertParseFailure(t, ParseDeleteTag, " mod/1", want)
	assertParseFailure(t, ParseDeleteTag, " 1", want)
	assertParseFailure(t, ParseDeleteTag, " 1 mod/1 cca/1", want)
	assertParseFailure(t, ParseDeleteTag, " 1 mod/1 mod/2", want)
	assertParseFailure(t, ParseDeleteTag, " 1 mod/0", want)
	assertParseFailure(t, ParseDeleteTag, " 1 mod/CS2103T", want)
}
