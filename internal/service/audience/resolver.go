// Recipient resolution for the notification pipeline. A send request names an
// audience (a stored filter or explicit id lists) plus optional free-text
// email addresses; the resolver turns that into a concrete, deduplicated set
// of users, mentors and extra emails.
package audience

import (
	"context"
	"regexp"
	"strings"

	"github.com/directiva-mx/admin-api/internal/domain/mentor"
	"github.com/directiva-mx/admin-api/internal/domain/user"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
)

// Filter selects a stored population. The zero value ("") behaves like
// FilterSpecific so callers that only pass id lists keep working.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterFree     Filter = "free"
	FilterPro      Filter = "pro"
	FilterMentors  Filter = "mentors"
	FilterSpecific Filter = "specific"
)

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterFree, FilterPro, FilterMentors, FilterSpecific, "":
		return true
	}
	return false
}

// Selection is the input to Resolve. IncludeMentors widens the pool filters
// (all/free/pro) with the mentor pool; it has no effect on FilterMentors or
// FilterSpecific, which name mentors directly.
type Selection struct {
	Filter         Filter
	UserIDs        []string
	MentorIDs      []string
	CustomEmails   string
	IncludeMentors bool
}

// Audience is the resolved recipient set. CustomEmails are lowercase and
// deduplicated against each other but not against user/mentor emails; the
// dispatcher merges all three when it builds the provider call.
type Audience struct {
	Users        []*user.User
	Mentors      []*mentor.Mentor
	CustomEmails []string
}

// Empty reports whether no recipient of any kind was resolved.
func (a *Audience) Empty() bool {
	return len(a.Users) == 0 && len(a.Mentors) == 0 && len(a.CustomEmails) == 0
}

// Emails returns every distinct email address in the audience, lowercase.
func (a *Audience) Emails() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(addr string) {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" {
			return
		}
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	for _, u := range a.Users {
		add(u.Email)
	}
	for _, m := range a.Mentors {
		add(m.Email)
	}
	for _, e := range a.CustomEmails {
		add(e)
	}
	return out
}

// UserDirectory is the slice of the user store the resolver needs.
type UserDirectory interface {
	ListActive(ctx context.Context, accountType *user.AccountType) ([]*user.User, error)
	FindActiveByIDs(ctx context.Context, ids []string) ([]*user.User, error)
}

// MentorDirectory is the slice of the mentor store the resolver needs.
type MentorDirectory interface {
	List(ctx context.Context) ([]*mentor.Mentor, error)
	FindByIDs(ctx context.Context, ids []string) ([]*mentor.Mentor, error)
}

type Resolver struct {
	users   UserDirectory
	mentors MentorDirectory
}

func NewResolver(users UserDirectory, mentors MentorDirectory) *Resolver {
	return &Resolver{users: users, mentors: mentors}
}

// Resolve expands a selection into concrete recipients. Unknown or inactive
// ids are silently absent from the result; a selection that yields nothing at
// all returns xerrors.ErrNoRecipients.
func (r *Resolver) Resolve(ctx context.Context, sel Selection) (*Audience, error) {
	if !sel.Filter.Valid() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown audience filter "+string(sel.Filter))
	}

	out := &Audience{CustomEmails: ParseCustomEmails(sel.CustomEmails)}

	var err error
	switch sel.Filter {
	case FilterAll:
		// "all" means the full user pool; mentors join only on request.
		out.Users, err = r.users.ListActive(ctx, nil)
	case FilterFree:
		t := user.AccountTypeFree
		out.Users, err = r.users.ListActive(ctx, &t)
	case FilterPro:
		t := user.AccountTypePro
		out.Users, err = r.users.ListActive(ctx, &t)
	case FilterMentors:
		out.Mentors, err = r.mentors.List(ctx)
	default: // FilterSpecific and the zero value
		if len(sel.UserIDs) > 0 {
			out.Users, err = r.users.FindActiveByIDs(ctx, sel.UserIDs)
			if err != nil {
				return nil, err
			}
		}
		if len(sel.MentorIDs) > 0 {
			out.Mentors, err = r.mentors.FindByIDs(ctx, sel.MentorIDs)
		}
	}
	if err != nil {
		return nil, err
	}

	if sel.IncludeMentors {
		switch sel.Filter {
		case FilterAll, FilterFree, FilterPro:
			out.Mentors, err = r.mentors.List(ctx)
			if err != nil {
				return nil, err
			}
		}
	}

	if out.Empty() {
		return nil, xerrors.ErrNoRecipients
	}
	return out, nil
}

var (
	emailSeparator = regexp.MustCompile(`[,;\n]+`)
	emailShape     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ParseCustomEmails splits free-form input on commas, semicolons and
// newlines, lowercases each entry and silently drops anything that does not
// look like an address. Duplicates collapse to one.
func ParseCustomEmails(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, part := range emailSeparator.Split(raw, -1) {
		addr := strings.ToLower(strings.TrimSpace(part))
		if addr == "" || !emailShape.MatchString(addr) {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}
