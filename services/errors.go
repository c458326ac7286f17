package services

// NotFoundError reports a lookup that matched no row. Its message is shown
// to callers verbatim, so it carries the full user-facing text.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string {
	return e.Message
}
