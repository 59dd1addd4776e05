package schema

import "fmt"

// DuplicateMessageId reports two messages in the same bundle declaring the
// same numeric id.
type DuplicateMessageId struct {
	ID uint32
}

func (e DuplicateMessageId) Error() string {
	return fmt.Sprintf("duplicate message id %d", e.ID)
}

func (e DuplicateMessageId) Is(target error) bool {
	_, ok := target.(DuplicateMessageId)
	return ok
}

// UnknownMessageId reports an id passed to IncludeMessages/ExcludeMessages
// that no compiled message in the catalog carries.
type UnknownMessageId struct {
	ID uint32
}

func (e UnknownMessageId) Error() string {
	return fmt.Sprintf("unknown message id %d", e.ID)
}

func (e UnknownMessageId) Is(target error) bool {
	_, ok := target.(UnknownMessageId)
	return ok
}
