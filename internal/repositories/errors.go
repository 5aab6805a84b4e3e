package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")

	ErrAlreadyConnected  = errors.New("users are already connected")
	ErrRequestPending    = errors.New("connection request already sent")
	ErrReverseRequest    = errors.New("this user has already sent you a connection request")
	ErrBlocked           = errors.New("user is blocked")
	ErrRequestNotPending = errors.New("connection request is no longer pending")
)

// translate maps gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
