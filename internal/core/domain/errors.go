package domain

import "errors"

// Erreurs du domaine, classées par taxonomie :
// InvalidArgument / NotFound / Forbidden / Conflict.
// Les adapters (REST, repository) traduisent depuis/vers ces sentinelles.
var (
	// --- InvalidArgument ---
	ErrMissingUserID       = errors.New("user id is required")
	ErrSelfFriendRequest   = errors.New("cannot send a friend request to yourself")
	ErrEmptyContent        = errors.New("content is required")
	ErrCommentPostMismatch = errors.New("comment does not belong to this post")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrInvalidPassword     = errors.New("password must be at least 8 characters")

	// --- NotFound ---
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrRequestNotFound = errors.New("friend request not found")

	// --- Forbidden ---
	ErrNotRequestReceiver = errors.New("not authorized to accept this request")

	// --- Conflict ---
	ErrAlreadyFriends     = errors.New("already friends")
	ErrRequestExists      = errors.New("friend request already exists")
	ErrAlreadyAccepted    = errors.New("request already accepted")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// --- Auth ---
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)
