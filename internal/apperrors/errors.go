// Package apperrors defines the stable error kinds the engine reports to its
// callers. Every rejected operation maps to exactly one of these, so handlers
// can render the precise reason instead of a generic failure.
package apperrors

import "errors"

var (
	// ErrNotFound is returned when a referenced user, jit, friend request or
	// friendship does not exist (or is not visible to the caller).
	ErrNotFound = errors.New("can not find record")

	// ErrSelfReference is returned when the target of an operation is the
	// acting user (friend request to yourself, etc).
	ErrSelfReference = errors.New("can not reference yourself")

	// ErrDuplicateRequest is returned when a friend request already exists in
	// either direction for the pair.
	ErrDuplicateRequest = errors.New("friend request already exists")

	// ErrAlreadyFriends is returned when a friendship already exists.
	ErrAlreadyFriends = errors.New("already friend")

	// ErrBlocked is returned when a block in either direction forbids the
	// operation.
	ErrBlocked = errors.New("user is blocked")

	// ErrRecipientBlocksAnonymous is returned when an anonymous jit lists a
	// target who opted out of anonymous jits.
	ErrRecipientBlocksAnonymous = errors.New("recipient blocks anonymous jits")

	// ErrSelfTarget is returned when an anonymous jit lists its author as a
	// target.
	ErrSelfTarget = errors.New("can not jit to yourself")

	// ErrAlreadyExists is returned on duplicate likes, favorites and blocks.
	ErrAlreadyExists = errors.New("record already exists")
)

// IsClientError reports whether err belongs to the recoverable, caller-fixable
// taxonomy above.
func IsClientError(err error) bool {
	for _, e := range []error{
		ErrNotFound,
		ErrSelfReference,
		ErrDuplicateRequest,
		ErrAlreadyFriends,
		ErrBlocked,
		ErrRecipientBlocksAnonymous,
		ErrSelfTarget,
		ErrAlreadyExists,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
