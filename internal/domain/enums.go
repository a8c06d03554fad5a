package domain

// LifecycleState is the moderation lifecycle of a confession.
// ACTIVE ↔ HIDDEN transitions are reversible; REMOVED is terminal.
type LifecycleState string

const (
	StateActive  LifecycleState = "ACTIVE"
	StateHidden  LifecycleState = "HIDDEN"
	StateRemoved LifecycleState = "REMOVED"
)

func (s LifecycleState) String() string { return string(s) }

func (s LifecycleState) IsValid() bool {
	switch s {
	case StateActive, StateHidden, StateRemoved:
		return true
	}
	return false
}

// Role is the privilege level of an authenticated user.
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleAdmin:
		return true
	}
	return false
}

// SortMode selects the feed ordering.
type SortMode string

const (
	SortNewest   SortMode = "newest"
	SortTrending SortMode = "trending"
)

func (m SortMode) String() string { return string(m) }

func (m SortMode) IsValid() bool {
	switch m {
	case SortNewest, SortTrending:
		return true
	}
	return false
}
