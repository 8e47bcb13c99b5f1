package session

import (
	"strings"
	"unicode/utf8"

	"vetgate/internal/remote"
)

// Display is the presentation view of a user snapshot.
type Display struct {
	FullName string `json:"full_name"`
	Initials string `json:"initials"`
	Verified bool   `json:"verified"`
}

// DisplayOf derives the presentation fields. The full name follows the
// Ukrainian convention of surname first when a patronymic is present.
func DisplayOf(u remote.User) Display {
	parts := make([]string, 0, 3)
	if u.Patronymic != "" {
		parts = append(parts, u.LastName, u.FirstName, u.Patronymic)
	} else {
		parts = append(parts, u.FirstName, u.LastName)
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	return Display{
		FullName: strings.Join(nonEmpty, " "),
		Initials: initial(u.FirstName) + initial(u.LastName),
		Verified: u.VerificationStatus == "verified",
	}
}

func initial(s string) string {
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r))
}
