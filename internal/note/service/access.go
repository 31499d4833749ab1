package service

import "notesapi/pkg/apperror"

// Access is the outcome of authorizing a caller against a note.
type Access int

const (
	AccessNotFound Access = iota
	AccessForbidden
	AccessOwner
	AccessCollaborator
)

func (a Access) String() string {
	switch a {
	case AccessOwner:
		return "owner"
	case AccessCollaborator:
		return "collaborator"
	case AccessForbidden:
		return "forbidden"
	default:
		return "not found"
	}
}

// Allowed reports whether the caller may proceed.
func (a Access) Allowed() bool {
	return a == AccessOwner || a == AccessCollaborator
}

// Err converts a terminal state into the caller-visible error, nil when allowed.
func (a Access) Err() error {
	switch a {
	case AccessOwner, AccessCollaborator:
		return nil
	case AccessForbidden:
		return apperror.Forbidden("you are not allowed to access this resource")
	default:
		return apperror.NotFound("note not found")
	}
}
