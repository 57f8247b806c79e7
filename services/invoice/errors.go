package invoice

import (
	"context"
	"errors"
	"fmt"

	invoiceRepo "hyperinvoice/database/repository/invoice"
	"hyperinvoice/services/bookingapi"
	"hyperinvoice/services/pdf"
	"hyperinvoice/services/storage"
)

type Kind string

const (
	KindNotFound           Kind = "NotFound"
	KindValidationFailure  Kind = "ValidationFailure"
	KindUpstreamFailure    Kind = "UpstreamFailure"
	KindRenderFailure      Kind = "RenderFailure"
	KindStorageFailure     Kind = "StorageFailure"
	KindPersistenceFailure Kind = "PersistenceFailure"
)

// Step names a stage of the generation pipeline.
type Step string

const (
	StepFetch    Step = "fetch"
	StepValidate Step = "validate"
	StepNumber   Step = "number"
	StepRender   Step = "render"
	StepUpload   Step = "upload"
	StepNotify   Step = "notify"
	StepPersist  Step = "persist"
)

// Error is returned by every InvoiceService operation.
// DocumentURL is set when the document was stored before the failure.
type Error struct {
	Kind        Kind
	Step        Step
	Field       string
	Message     string
	DocumentURL string
	Err         error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, or "" if err did not come from this package.
func KindOf(err error) Kind {
	var ierr *Error
	if errors.As(err, &ierr) {
		return ierr.Kind
	}
	return ""
}

func validationError(field, message string) *Error {
	return &Error{
		Kind:    KindValidationFailure,
		Step:    StepValidate,
		Field:   field,
		Message: message,
	}
}

// classify turns a collaborator error into an *Error. Typed errors decide the
// kind; anything else falls back to the kind owned by the step.
func classify(step Step, err error) *Error {
	var ierr *Error
	if errors.As(err, &ierr) {
		return ierr
	}

	kind := stepKind(step)
	var (
		notFound *bookingapi.NotFoundError
		upstream *bookingapi.UpstreamError
		render   *pdf.RenderError
		upload   *storage.UploadError
	)
	switch {
	case errors.As(err, &notFound), errors.Is(err, invoiceRepo.ErrInvoiceNotFound):
		kind = KindNotFound
	case errors.As(err, &upstream):
		kind = KindUpstreamFailure
	case errors.As(err, &render):
		kind = KindRenderFailure
	case errors.As(err, &upload):
		kind = KindStorageFailure
	}

	message := err.Error()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		message = fmt.Sprintf("%s aborted: %v", step, err)
	}
	return &Error{Kind: kind, Step: step, Message: message, Err: err}
}

func stepKind(step Step) Kind {
	switch step {
	case StepFetch, StepNotify:
		return KindUpstreamFailure
	case StepRender:
		return KindRenderFailure
	case StepUpload:
		return KindStorageFailure
	case StepPersist:
		return KindPersistenceFailure
	case StepValidate:
		return KindValidationFailure
	default:
		return KindUpstreamFailure
	}
}
