package services

import (
	"errors"

	"github.com/dmitrijs2005/eldercare/internal/common"
)

var (
	ErrValidation = common.ErrorValidation
	ErrNotFound   = common.ErrorNotFound

	// ErrCorruptValue means a stored document could not be decoded.
	ErrCorruptValue = errors.New("stored value is corrupt")
)
