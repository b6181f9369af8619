package service

import "errors"

// ErrValidation marks user-input errors. Handlers surface these to the user
// with a 400; everything else from external dependencies is absorbed at its
// component boundary and never reaches a response.
var ErrValidation = errors.New("validation")
