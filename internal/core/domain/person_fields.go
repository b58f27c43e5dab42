package domain

import (
	"regexp"
	"time"
)

// Constraint messages shown when a field fails validation.
const (
	NameConstraints = "Names should only contain alphanumeric characters and spaces, and it should not be blank"

	PhoneConstraints = "Phone numbers should only contain numbers, and it should be at least 3 digits long"

	EmailConstraints = "Emails should be of the format local-part@domain " +
		"and adhere to the following constraints:\n" +
		"1. The local-part should only contain alphanumeric characters and these special characters, " +
		"excluding the parentheses, (" + emailSpecialCharacters + "). " +
		"The local-part may not start or end with any special characters.\n" +
		"2. This is followed by a '@' and then a domain name. The domain name is made up of domain labels " +
		"separated by periods.\n" +
		"The domain name must:\n" +
		"    - end with a domain label at least 2 characters long\n" +
		"    - have each domain label start and end with alphanumeric characters\n" +
		"    - have each domain label consist of alphanumeric characters, separated only by hyphens, if any."

	AddressConstraints = "Addresses can take any values, and it should not be blank"

	BirthdayConstraints = "Birthdays should be in the format DD/MM/YYYY, be a valid date and not be in the future"
)

// BirthdayLayout is the time layout of a birthday (DD/MM/YYYY).
const BirthdayLayout = "02/01/2006"

const emailSpecialCharacters = "+_.-"

var (
	nameRegexp    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]*$`)
	phoneRegexp   = regexp.MustCompile(`^\d{3,}$`)
	addressRegexp = regexp.MustCompile(`^[^\s].*$`)
	emailRegexp   = regexp.MustCompile(emailPattern())
)

func emailPattern() string {
	const alnum = `[^\W_]+`
	local := "^" + alnum + "([" + regexp.QuoteMeta(emailSpecialCharacters) + "]" + alnum + ")*"
	domainPart := alnum + "(-" + alnum + ")*"
	domainLast := "(" + domainPart + "){2,}$"
	return local + "@" + "(" + domainPart + `\.)*` + domainLast
}

// Name is a person's name.
type Name string

// IsValidName reports whether s is a valid name.
func IsValidName(s string) bool { return nameRegexp.MatchString(s) }

// Phone is a phone number.
type Phone string

// IsValidPhone reports whether s is a valid phone number.
func IsValidPhone(s string) bool { return phoneRegexp.MatchString(s) }

// Email is an email address.
type Email string

// IsValidEmail reports whether s is a valid email address.
func IsValidEmail(s string) bool { return emailRegexp.MatchString(s) }

// Address is a postal address.
type Address string

// IsValidAddress reports whether s is a valid address.
func IsValidAddress(s string) bool { return addressRegexp.MatchString(s) }

// Birthday is a date of birth in DD/MM/YYYY form.
type Birthday string

// IsValidBirthday reports whether s is a real, non-future date in DD/MM/YYYY form.
func IsValidBirthday(s string) bool {
	return isValidBirthdayAt(s, time.Now())
}

// isValidBirthdayAt compares calendar dates in now's location.
func isValidBirthdayAt(s string, now time.Time) bool {
	t, err := time.ParseInLocation(BirthdayLayout, s, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !t.After(today)
}

// Time returns the birthday as a time.Time. Invalid birthdays yield the zero time.
func (b Birthday) Time() time.Time {
	t, _ := time.Parse(BirthdayLayout, string(b))
	return t
}
