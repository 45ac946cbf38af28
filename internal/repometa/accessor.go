package repometa

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/gitmeta/internal/execshell"
)

const (
	// DefaultCommitReference names the checked-out commit.
	DefaultCommitReference = "HEAD"
	// DefaultAbbreviationLength is the hash length used when callers do not choose one.
	DefaultAbbreviationLength = 10

	operationCurrentCommitConstant  = "current commit"
	operationLatestTagsConstant     = "latest tags"
	operationCommitMessageConstant  = "commit message"
	operationCommitDateConstant     = "commit date"
	operationCommitDatetimeConstant = "commit datetime"
	operationSummaryConstant        = "summary"

	gitRevParseSubcommandConstant      = "rev-parse"
	gitShortFlagPrefixConstant         = "--short="
	gitTagSubcommandConstant           = "tag"
	gitSortByCommitterDateFlagConstant = "--sort=-committerdate"
	gitPointsAtFlagConstant            = "--points-at"
	gitNoMergedFlagConstant            = "--no-merged"
	gitLogSubcommandConstant           = "log"
	gitSingleCommitFlagConstant        = "-1"
	gitMessageBodyFormatFlagConstant   = "--pretty=%B"
	gitCommitterDateFormatFlagConstant = "--pretty=%cd"
	gitCalendarDateFlagConstant        = "--date=format:'%Y-%m-%d'"
	gitStrictISODateFlagConstant       = "--date=iso-strict"

	abbreviationLengthErrorTemplateConstant    = "%w: %d"
	dateQuoteCharactersConstant                = "'"
	outputLineSeparatorConstant                = "\n"
	notDirectoryDiagnosticConstant             = "not a directory"
	commitOptionPrefixConstant                 = "-"
	optionLikeCommitDiagnosticTemplateConstant = "commit reference %q looks like a git option"
)

// GitExecutor runs git commands on behalf of the accessor.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem exposes the filesystem inspection the accessor performs before running git.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
}

// OSFileSystem implements FileSystem using the operating system.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// AccessorDependencies enumerates collaborators and settings of an Accessor.
type AccessorDependencies struct {
	GitExecutor GitExecutor
	FileSystem  FileSystem
	// Timeout bounds each git invocation. Zero disables the bound.
	Timeout time.Duration
}

// Accessor answers metadata queries against local checkouts. It holds no
// mutable state and is safe for concurrent use.
type Accessor struct {
	executor   GitExecutor
	fileSystem FileSystem
	timeout    time.Duration
}

// NewAccessor constructs an Accessor from the provided dependencies.
func NewAccessor(dependencies AccessorDependencies) (*Accessor, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	timeout := dependencies.Timeout
	if timeout < 0 {
		timeout = 0
	}
	return &Accessor{executor: dependencies.GitExecutor, fileSystem: fileSystem, timeout: timeout}, nil
}

// CurrentCommit returns the checked-out commit hash abbreviated to abbreviationLength
// hex digits, or the full hash when abbreviationLength is zero.
func (accessor *Accessor) CurrentCommit(executionContext context.Context, checkoutPath string, abbreviationLength int) (string, error) {
	if abbreviationLength < 0 {
		return "", fmt.Errorf(abbreviationLengthErrorTemplateConstant, ErrInvalidAbbreviationLength, abbreviationLength)
	}

	arguments := []string{gitRevParseSubcommandConstant}
	if abbreviationLength > 0 {
		arguments = append(arguments, gitShortFlagPrefixConstant+strconv.Itoa(abbreviationLength))
	}
	arguments = append(arguments, DefaultCommitReference)

	return accessor.query(executionContext, operationCurrentCommitConstant, checkoutPath, arguments)
}

// LatestTags lists the tags pointing exactly at commit followed by the tags whose
// commits are not yet merged into commit, each group ordered by descending committer date.
// The result is never nil and is not deduplicated.
func (accessor *Accessor) LatestTags(executionContext context.Context, checkoutPath string, commit string) ([]string, error) {
	trimmedCommit, commitError := requireCommit(operationLatestTagsConstant, checkoutPath, commit)
	if commitError != nil {
		return nil, commitError
	}

	pointingTags, pointingError := accessor.queryTags(executionContext, checkoutPath, gitPointsAtFlagConstant, trimmedCommit)
	if pointingError != nil {
		return nil, pointingError
	}

	unreachedTags, unreachedError := accessor.queryTags(executionContext, checkoutPath, gitNoMergedFlagConstant, trimmedCommit)
	if unreachedError != nil {
		return nil, unreachedError
	}

	return append(pointingTags, unreachedTags...), nil
}

// CommitMessage returns the full message of commit with surrounding whitespace removed.
func (accessor *Accessor) CommitMessage(executionContext context.Context, checkoutPath string, commit string) (string, error) {
	trimmedCommit, commitError := requireCommit(operationCommitMessageConstant, checkoutPath, commit)
	if commitError != nil {
		return "", commitError
	}
	arguments := []string{gitLogSubcommandConstant, gitSingleCommitFlagConstant, gitMessageBodyFormatFlagConstant, trimmedCommit}
	return accessor.query(executionContext, operationCommitMessageConstant, checkoutPath, arguments)
}

// CommitDate returns the committer date of commit formatted as YYYY-MM-DD.
func (accessor *Accessor) CommitDate(executionContext context.Context, checkoutPath string, commit string) (string, error) {
	trimmedCommit, commitError := requireCommit(operationCommitDateConstant, checkoutPath, commit)
	if commitError != nil {
		return "", commitError
	}
	arguments := []string{gitLogSubcommandConstant, gitSingleCommitFlagConstant, gitCalendarDateFlagConstant, gitCommitterDateFormatFlagConstant, trimmedCommit}
	output, queryError := accessor.query(executionContext, operationCommitDateConstant, checkoutPath, arguments)
	if queryError != nil {
		return "", queryError
	}
	return stripDateQuotes(output), nil
}

// CommitDatetime returns the committer timestamp of commit with its original zone offset.
func (accessor *Accessor) CommitDatetime(executionContext context.Context, checkoutPath string, commit string) (time.Time, error) {
	trimmedCommit, commitError := requireCommit(operationCommitDatetimeConstant, checkoutPath, commit)
	if commitError != nil {
		return time.Time{}, commitError
	}
	arguments := []string{gitLogSubcommandConstant, gitSingleCommitFlagConstant, gitStrictISODateFlagConstant, gitCommitterDateFormatFlagConstant, trimmedCommit}
	output, queryError := accessor.query(executionContext, operationCommitDatetimeConstant, checkoutPath, arguments)
	if queryError != nil {
		return time.Time{}, queryError
	}

	timestamp := stripDateQuotes(output)
	parsedTimestamp, parseError := time.Parse(time.RFC3339, timestamp)
	if parseError != nil {
		return time.Time{}, &QueryError{
			Operation:      operationCommitDatetimeConstant,
			RepositoryPath: checkoutPath,
			Reason:         ErrParseError,
			Diagnostic:     timestamp,
			Cause:          parseError,
		}
	}
	return parsedTimestamp, nil
}

func (accessor *Accessor) queryTags(executionContext context.Context, checkoutPath string, filterFlag string, commit string) ([]string, error) {
	arguments := []string{gitTagSubcommandConstant, gitSortByCommitterDateFlagConstant, filterFlag, commit}
	output, queryError := accessor.query(executionContext, operationLatestTagsConstant, checkoutPath, arguments)
	if queryError != nil {
		return nil, queryError
	}
	return splitOutputLines(output), nil
}

// query runs one git invocation in checkoutPath and returns its trimmed standard output.
// Any standard error output fails the query.
func (accessor *Accessor) query(executionContext context.Context, operation string, checkoutPath string, arguments []string) (string, error) {
	if pathError := accessor.verifyCheckoutPath(operation, checkoutPath); pathError != nil {
		return "", pathError
	}

	queryContext, cancel := accessor.queryContext(executionContext)
	defer cancel()

	executionResult, executionError := accessor.executor.ExecuteGit(queryContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: checkoutPath,
	})
	if executionError != nil {
		return "", translateExecutionError(operation, checkoutPath, executionError)
	}

	if len(executionResult.StandardError) > 0 {
		return "", &QueryError{
			Operation:      operation,
			RepositoryPath: checkoutPath,
			Reason:         ErrQueryFailed,
			Diagnostic:     executionResult.StandardError,
		}
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

func (accessor *Accessor) verifyCheckoutPath(operation string, checkoutPath string) error {
	if len(strings.TrimSpace(checkoutPath)) == 0 {
		return ErrCheckoutPathRequired
	}
	pathInfo, statError := accessor.fileSystem.Stat(checkoutPath)
	if statError != nil {
		return &QueryError{Operation: operation, RepositoryPath: checkoutPath, Reason: ErrInvalidPath, Cause: statError}
	}
	if !pathInfo.IsDir() {
		return &QueryError{Operation: operation, RepositoryPath: checkoutPath, Reason: ErrInvalidPath, Diagnostic: notDirectoryDiagnosticConstant}
	}
	return nil
}

func (accessor *Accessor) queryContext(executionContext context.Context) (context.Context, context.CancelFunc) {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if accessor.timeout <= 0 {
		return context.WithCancel(executionContext)
	}
	return context.WithTimeout(executionContext, accessor.timeout)
}

func translateExecutionError(operation string, checkoutPath string, executionError error) error {
	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) {
		return &QueryError{
			Operation:      operation,
			RepositoryPath: checkoutPath,
			Reason:         classifyDiagnostic(commandFailure.Result.StandardError),
			Diagnostic:     commandFailure.Result.StandardError,
			Cause:          executionError,
		}
	}

	reason := ErrQueryFailed
	if errors.Is(executionError, execshell.ErrWorkingDirectoryUnavailable) {
		reason = ErrInvalidPath
	}
	return &QueryError{Operation: operation, RepositoryPath: checkoutPath, Reason: reason, Cause: executionError}
}

// requireCommit rejects references git would parse as options.
func requireCommit(operation string, checkoutPath string, commit string) (string, error) {
	trimmedCommit := strings.TrimSpace(commit)
	if len(trimmedCommit) == 0 {
		return "", ErrCommitRequired
	}
	if strings.HasPrefix(trimmedCommit, commitOptionPrefixConstant) {
		return "", &QueryError{
			Operation:      operation,
			RepositoryPath: checkoutPath,
			Reason:         ErrCommitNotFound,
			Diagnostic:     fmt.Sprintf(optionLikeCommitDiagnosticTemplateConstant, trimmedCommit),
		}
	}
	return trimmedCommit, nil
}

// stripDateQuotes removes the quote characters git keeps around formatted dates.
func stripDateQuotes(value string) string {
	return strings.Trim(value, dateQuoteCharactersConstant)
}

// splitOutputLines returns an empty, non-nil slice for empty output.
func splitOutputLines(output string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(output, outputLineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		lines = append(lines, trimmedLine)
	}
	return lines
}
