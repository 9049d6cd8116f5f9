package git

import (
	"context"
	"fmt"
	"strings"
)

// DefaultAuthorName is the commit identity used when nothing else resolves.
const DefaultAuthorName = "Treeship Bot"

// DefaultAuthorEmail is the commit email used when nothing else resolves.
const DefaultAuthorEmail = "bot@treeship.dev"

// Author is a resolved git commit identity.
type Author struct {
	Name  string
	Email string
}

// String formats the author as "Name <email>".
func (a Author) String() string {
	if a.Name == "" && a.Email == "" {
		return ""
	}
	if a.Name == "" {
		return a.Email
	}
	if a.Email == "" {
		return a.Name
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// ParseAuthor parses a free-form "Name <email>" string. Whitespace is
// trimmed around both parts, including inside the angle brackets. Input
// without brackets is treated as a bare name.
func ParseAuthor(raw string) Author {
	raw = strings.TrimSpace(raw)

	left := strings.LastIndex(raw, "<")
	right := strings.LastIndex(raw, ">")
	if left != -1 && right != -1 && right > left {
		return Author{
			Name:  strings.TrimSpace(raw[:left]),
			Email: strings.TrimSpace(raw[left+1 : right]),
		}
	}
	return Author{Name: raw}
}

// ResolveAuthor produces the identity used for extracted commits. Each field
// falls through independently: explicit "Name <email>" input, then the
// repository's ambient user.name/user.email config, then the defaults.
func ResolveAuthor(ctx context.Context, explicit string, client *Client) Author {
	author := ParseAuthor(explicit)

	if author.Name == "" {
		if name, err := client.ConfigGet(ctx, "user.name"); err == nil && name != "" {
			author.Name = name
		}
	}
	if author.Email == "" {
		if email, err := client.ConfigGet(ctx, "user.email"); err == nil && email != "" {
			author.Email = email
		}
	}

	if author.Name == "" {
		author.Name = DefaultAuthorName
	}
	if author.Email == "" {
		author.Email = DefaultAuthorEmail
	}
	return author
}

// SetAuthor writes the identity into the repository's local git config so
// subsequent history-filter commits carry it.
func (c *Client) SetAuthor(ctx context.Context, author Author) error {
	if err := c.SetConfig(ctx, "user.name", author.Name); err != nil {
		return err
	}
	return c.SetConfig(ctx, "user.email", author.Email)
}
