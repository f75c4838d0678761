package types

// OwnerKind is the type of ownership entry - one of user, team, or email.
type OwnerKind string

const (
	// OwnerUser is a @username entry.
	OwnerUser OwnerKind = "user"

	// OwnerTeam is a @org/team entry.
	OwnerTeam OwnerKind = "team"

	// OwnerEmail is a plain email address entry.
	OwnerEmail OwnerKind = "email"
)

// Owner is a single ownership entry on a rule line. Text always preserves the
// original token verbatim, including the leading @ for users and teams; the
// kind-specific fields hold the decomposed form.
type Owner struct {
	Kind OwnerKind `json:"kind"`

	// Name is the username for OwnerUser, without the leading @.
	Name string `json:"name,omitempty"`

	// Org and Team are the slug halves of an OwnerTeam entry.
	Org  string `json:"org,omitempty"`
	Team string `json:"team,omitempty"`

	// Email is the address for OwnerEmail.
	Email string `json:"email,omitempty"`

	Text string `json:"text"`
	Span Span   `json:"span"`
}

// UserOwner builds an OwnerUser entry from its username.
func UserOwner(name string, span Span) Owner {
	return Owner{Kind: OwnerUser, Name: name, Text: "@" + name, Span: span}
}

// TeamOwner builds an OwnerTeam entry from its org and team slugs.
func TeamOwner(org, team string, span Span) Owner {
	return Owner{Kind: OwnerTeam, Org: org, Team: team, Text: "@" + org + "/" + team, Span: span}
}

// EmailOwner builds an OwnerEmail entry from an address.
func EmailOwner(email string, span Span) Owner {
	return Owner{Kind: OwnerEmail, Email: email, Text: email, Span: span}
}

// String returns the owner as written in the file.
func (o Owner) String() string {
	return o.Text
}
