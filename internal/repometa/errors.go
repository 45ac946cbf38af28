package repometa

import (
	"errors"
	"fmt"
	"strings"
)

const (
	queryFailedMessageConstant                 = "metadata query failed"
	invalidPathMessageConstant                 = "checkout path is not a usable git repository"
	commitNotFoundMessageConstant              = "commit reference does not resolve"
	parseErrorMessageConstant                  = "unable to parse git output"
	checkoutPathRequiredMessageConstant        = "checkout path must be provided"
	commitRequiredMessageConstant              = "commit reference must be provided"
	invalidAbbreviationLengthMessageConstant   = "abbreviation length must not be negative"
	gitExecutorMissingMessageConstant          = "git executor not configured"
	queryErrorTemplateConstant                 = "%s in %s: %v"
	queryErrorDiagnosticSuffixTemplateConstant = ": %s"
	queryErrorCauseSuffixTemplateConstant      = " (%v)"
)

// Failure reasons reported through QueryError.
var (
	// ErrQueryFailed indicates git reported a diagnostic that is not otherwise classified.
	ErrQueryFailed = errors.New(queryFailedMessageConstant)
	// ErrInvalidPath indicates the checkout path does not reference a usable repository.
	ErrInvalidPath = errors.New(invalidPathMessageConstant)
	// ErrCommitNotFound indicates the supplied commit reference does not resolve.
	ErrCommitNotFound = errors.New(commitNotFoundMessageConstant)
	// ErrParseError indicates git produced output that could not be interpreted.
	ErrParseError = errors.New(parseErrorMessageConstant)
)

// Input validation failures.
var (
	ErrCheckoutPathRequired      = errors.New(checkoutPathRequiredMessageConstant)
	ErrCommitRequired            = errors.New(commitRequiredMessageConstant)
	ErrInvalidAbbreviationLength = errors.New(invalidAbbreviationLengthMessageConstant)
	ErrGitExecutorNotConfigured  = errors.New(gitExecutorMissingMessageConstant)
)

var invalidPathDiagnosticMarkers = []string{
	"not a git repository",
	"cannot change to",
}

var commitNotFoundDiagnosticMarkers = []string{
	"unknown revision",
	"bad revision",
	"ambiguous argument",
	"malformed object name",
	"no such commit",
	"bad object",
	"needed a single revision",
}

// QueryError describes a failed metadata query. Diagnostic holds git's standard
// error output verbatim.
type QueryError struct {
	Operation      string
	RepositoryPath string
	Reason         error
	Diagnostic     string
	Cause          error
}

// Error renders the operation, checkout path, reason, and diagnostic text.
func (queryError *QueryError) Error() string {
	message := fmt.Sprintf(queryErrorTemplateConstant, queryError.Operation, queryError.RepositoryPath, queryError.Reason)
	trimmedDiagnostic := strings.TrimSpace(queryError.Diagnostic)
	if len(trimmedDiagnostic) > 0 {
		return message + fmt.Sprintf(queryErrorDiagnosticSuffixTemplateConstant, trimmedDiagnostic)
	}
	if queryError.Cause != nil {
		return message + fmt.Sprintf(queryErrorCauseSuffixTemplateConstant, queryError.Cause)
	}
	return message
}

// Unwrap exposes both the reason sentinel and the underlying cause.
func (queryError *QueryError) Unwrap() []error {
	unwrapped := make([]error, 0, 2)
	if queryError.Reason != nil {
		unwrapped = append(unwrapped, queryError.Reason)
	}
	if queryError.Cause != nil {
		unwrapped = append(unwrapped, queryError.Cause)
	}
	return unwrapped
}

// classifyDiagnostic maps the standard error of a failed git invocation to a failure reason.
func classifyDiagnostic(diagnostic string) error {
	loweredDiagnostic := strings.ToLower(diagnostic)
	switch {
	case containsAny(loweredDiagnostic, invalidPathDiagnosticMarkers):
		return ErrInvalidPath
	case containsAny(loweredDiagnostic, commitNotFoundDiagnosticMarkers):
		return ErrCommitNotFound
	default:
		return ErrQueryFailed
	}
}

func containsAny(value string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(value, marker) {
			return true
		}
	}
	return false
}
