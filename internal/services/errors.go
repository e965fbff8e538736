package services

// Error is a sentinel service error compared with errors.Is.
type Error struct {
	message string
}

func NewError(message string) *Error {
	return &Error{message: message}
}

func (e *Error) Error() string {
	return e.message
}

var (
	// ErrDuplicateID is returned when adding a course whose slug is taken.
	ErrDuplicateID = NewError("duplicate id")
	// ErrAccountNotCreated means a person was stored but its login account
	// could not be written.
	ErrAccountNotCreated = NewError("linked user account was not created")
	// ErrEmptyID is returned when no course slug can be derived.
	ErrEmptyID = NewError("course id is empty")
	// ErrInvalidID is returned for a supplied course id that is not a slug.
	ErrInvalidID = NewError("course id must be lowercase letters, digits and hyphens")
)
