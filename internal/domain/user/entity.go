package user

// User represents a user entity in the system.
// Name, Email, and Priority are nullable columns, so they are pointers:
// a nil field is stored and returned as NULL, never merged with prior values.
type User struct {
	ID       int64   // ID is the unique identifier for the user, assigned by the store on creation
	Name     *string // Name is the full name of the user
	Email    *string // Email is the email address of the user
	Priority *int    // Priority is the user's priority value, looked up by equality only
}

// SaveOutcome reports whether a save inserted a new row or overwrote an existing one.
type SaveOutcome int

const (
	SaveOutcomeCreated SaveOutcome = iota // a new row was inserted and an id assigned
	SaveOutcomeUpdated                    // an existing row was fully overwritten
)

// String returns a human-readable name for the outcome.
func (o SaveOutcome) String() string {
	switch o {
	case SaveOutcomeCreated:
		return "created"
	case SaveOutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// DeleteOutcome reports the result of a delete-by-id.
type DeleteOutcome int

const (
	DeleteOutcomeDeleted  DeleteOutcome = iota // the row existed and was removed
	DeleteOutcomeNotFound                      // no row with that id existed
)

// String returns a human-readable name for the outcome.
func (o DeleteOutcome) String() string {
	switch o {
	case DeleteOutcomeDeleted:
		return "deleted"
	case DeleteOutcomeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
