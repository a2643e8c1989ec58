package services

import (
	"errors"
	"fmt"
)

// Ошибки валидации детерминированы и не ретраятся; ErrStorage — единственный
// класс, который вызывающая сторона может повторить.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidDefinition = errors.New("invalid pipeline definition")
	ErrInvalidStage      = errors.New("stage does not belong to pipeline")
	ErrIllegalTransition = errors.New("illegal stage transition")
	ErrClosedLead        = errors.New("lead is closed")
	ErrStorage           = errors.New("storage unavailable")
)

func storageError(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
