package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-landing/internal/configschema"
	"github.com/goliatone/go-landing/internal/sections"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"

	sectionInvalidVariant     = "SECTION_INVALID_VARIANT"
	sectionInvalidPermutation = "SECTION_INVALID_PERMUTATION"
	sectionUnknown            = "SECTION_UNKNOWN"
	sectionNotFound           = "SECTION_NOT_FOUND"
	sectionValueRejected      = "SECTION_VALUE_REJECTED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

// wrapExecuteError tags store rejections as validation failures so callers
// can tell bad input from transport faults.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	var notFound *sections.NotFoundError
	switch {
	case errors.Is(err, sections.ErrInvalidVariant):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "section variant is not declared").
			WithTextCode(sectionInvalidVariant)
	case errors.Is(err, sections.ErrInvalidPermutation):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "section order is not a permutation").
			WithTextCode(sectionInvalidPermutation)
	case errors.Is(err, sections.ErrUnknownSection):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "section key is not in the catalog").
			WithTextCode(sectionUnknown)
	case errors.Is(err, configschema.ErrValidationRejected):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "section value rejected").
			WithTextCode(sectionValueRejected)
	case errors.As(err, &notFound):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "section not found").
			WithTextCode(sectionNotFound)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}
