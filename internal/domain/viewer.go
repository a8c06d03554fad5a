package domain

import "github.com/google/uuid"

// Viewer identifies who is looking. It is a total two-variant type:
// either a guest or an authenticated user with a role. Every core
// operation takes the viewer explicitly; nothing reads it from ambient
// state.
type Viewer struct {
	userID        uuid.UUID
	role          Role
	authenticated bool
}

// Guest returns the unauthenticated viewer.
func Guest() Viewer {
	return Viewer{}
}

// NewViewer returns an authenticated viewer with the given role.
func NewViewer(userID uuid.UUID, role Role) Viewer {
	return Viewer{userID: userID, role: role, authenticated: true}
}

// IsGuest reports whether the viewer is unauthenticated.
func (v Viewer) IsGuest() bool { return !v.authenticated }

// IsAdmin reports whether the viewer is an authenticated administrator.
func (v Viewer) IsAdmin() bool { return v.authenticated && v.role == RoleAdmin }

// UserID returns the viewer's user ID. ok is false for guests.
func (v Viewer) UserID() (id uuid.UUID, ok bool) {
	if !v.authenticated {
		return uuid.Nil, false
	}
	return v.userID, true
}

// Role returns the viewer's role. ok is false for guests.
func (v Viewer) Role() (Role, bool) {
	if !v.authenticated {
		return "", false
	}
	return v.role, true
}
