package domain

// ActorRef is an opaque reference to the user behind a ledger event.
// Orders and ledger entries both record their creator with it.
type ActorRef string

// AccessLevel decides which balance view and which admin operations an actor gets.
type AccessLevel string

const (
	AccessAdmin  AccessLevel = "admin"
	AccessMember AccessLevel = "member"
)

// Actor is the identity presented at the boundary of every ledger operation.
type Actor struct {
	Ref   ActorRef    `json:"ref"`
	Level AccessLevel `json:"level"`
}

// IsAdmin reports whether the actor has system-wide visibility.
func (a Actor) IsAdmin() bool {
	return a.Level == AccessAdmin
}

// ParseAccessLevel maps a role claim onto an AccessLevel. Unknown roles are members.
func ParseAccessLevel(role string) AccessLevel {
	if AccessLevel(role) == AccessAdmin {
		return AccessAdmin
	}
	return AccessMember
}
