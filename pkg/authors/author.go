package authors

import "strings"

// Author is a parsed author string.
type Author struct {
	Name  string // Display name, may be empty
	Email string // Address inside the trailing <...>, empty when absent
}

// HasEmail reports whether the author string carried a non-empty email.
func (a Author) HasEmail() bool { return a.Email != "" }

// String formats the author as "Name <email>", omitting missing parts.
func (a Author) String() string {
	switch {
	case a.Name == "":
		if a.Email == "" {
			return ""
		}
		return "<" + a.Email + ">"
	case a.Email == "":
		return a.Name
	default:
		return a.Name + " <" + a.Email + ">"
	}
}

// authorParser splits "Name <email>" strings. The delimiters are fixed at
// construction so a Normalizer owns its parser outright.
type authorParser struct {
	open, close string
}

func newAuthorParser() authorParser {
	return authorParser{open: "<", close: ">"}
}

// parse treats a trailing <...> segment as the email and the text before
// its opening bracket as the name. Both parts are trimmed.
func (p authorParser) parse(s string) Author {
	s = strings.TrimSpace(s)
	body, ok := strings.CutSuffix(s, p.close)
	if !ok {
		return Author{Name: s}
	}
	i := strings.LastIndex(body, p.open)
	if i < 0 {
		return Author{Name: s}
	}
	return Author{
		Name:  strings.TrimSpace(body[:i]),
		Email: strings.TrimSpace(body[i+len(p.open):]),
	}
}

// ParseAuthor splits an author string such as "Jane Doe <jane@example.com>"
// into its display name and email. Strings without a trailing <...> segment
// are returned whole as the name.
func ParseAuthor(s string) Author {
	return newAuthorParser().parse(s)
}
