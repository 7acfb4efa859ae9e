package model

// AccessLevel ranks what a user may do on a board and everything nested
// under it. Levels are compared by rank only, never by name.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessReadOnly
	AccessMember
	AccessAdmin
	AccessOwner
)

// Meets reports whether the level satisfies the required threshold.
func (l AccessLevel) Meets(required AccessLevel) bool {
	return l >= required
}

// Valid reports whether the value is one of the declared levels.
func (l AccessLevel) Valid() bool {
	return l >= AccessNone && l <= AccessOwner
}

// Coerce applies the public-board floor: on a public board every
// authenticated user reads at least read-only, a stored grant above
// that wins.
func (l AccessLevel) Coerce(public bool) AccessLevel {
	if public && l < AccessReadOnly {
		return AccessReadOnly
	}
	return l
}

func (l AccessLevel) String() string {
	switch l {
	case AccessNone:
		return "none"
	case AccessReadOnly:
		return "read_only"
	case AccessMember:
		return "member"
	case AccessAdmin:
		return "admin"
	case AccessOwner:
		return "owner"
	}
	return "unknown"
}
