package store

// NotFoundError indicates the referenced record id is absent from the store.
// Callers distinguish it from business errors returned by their own update
// functions via errors.As.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return "record not found: " + e.ID
}

// DuplicateIDError indicates a Create call for an id that is already present.
type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string {
	return "record already exists: " + e.ID
}
