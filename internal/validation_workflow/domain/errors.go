package domain

import "errors"

var (
	ErrValidationNotFound = errors.New("validation not found")
	ErrTestCaseNotFound   = errors.New("test case not found")
	ErrAlreadyComplete    = errors.New("validation already complete")
	ErrStatusTransition   = errors.New("validation status cannot move backwards")
	ErrInvalidStatus      = errors.New("invalid validation status")
	ErrInvalidScore       = errors.New("compliance score must be between 0 and 100")
)
