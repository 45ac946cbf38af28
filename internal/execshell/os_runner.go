package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
)

const (
	environmentAssignmentTemplateConstant       = "%s=%s"
	workingDirectoryUnavailableMessageConstant  = "working directory unavailable"
	workingDirectoryUnavailableTemplateConstant = "%w: %s: %v"
	workingDirectoryNotDirectoryMessageConstant = "not a directory"
)

// ErrWorkingDirectoryUnavailable indicates the requested working directory cannot host the command.
var ErrWorkingDirectoryUnavailable = errors.New(workingDirectoryUnavailableMessageConstant)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command. Cancelling executionContext kills the process.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if directoryError := verifyWorkingDirectory(command.Details.WorkingDirectory); directoryError != nil {
		return ExecutionResult{}, directoryError
	}

	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory
	executable.Env = mergeEnvironment(command.Details.EnvironmentVariables)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer
	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := executable.Run()
	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, contextError
	}

	result := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}
	if runError == nil {
		return result, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		result.ExitCode = exitError.ExitCode()
		return result, nil
	}
	return ExecutionResult{}, runError
}

func verifyWorkingDirectory(workingDirectory string) error {
	if len(workingDirectory) == 0 {
		return nil
	}
	directoryInfo, statError := os.Stat(workingDirectory)
	if statError != nil {
		return fmt.Errorf(workingDirectoryUnavailableTemplateConstant, ErrWorkingDirectoryUnavailable, workingDirectory, statError)
	}
	if !directoryInfo.IsDir() {
		return fmt.Errorf(workingDirectoryUnavailableTemplateConstant, ErrWorkingDirectoryUnavailable, workingDirectory, workingDirectoryNotDirectoryMessageConstant)
	}
	return nil
}

// mergeEnvironment returns nil when no overrides are present so the child inherits the parent environment.
func mergeEnvironment(overrides map[string]string) []string {
	if len(overrides) == 0 {
		return nil
	}
	overrideKeys := make([]string, 0, len(overrides))
	for overrideKey := range overrides {
		overrideKeys = append(overrideKeys, overrideKey)
	}
	sort.Strings(overrideKeys)

	mergedEnvironment := append([]string{}, os.Environ()...)
	for _, overrideKey := range overrideKeys {
		mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, overrideKey, overrides[overrideKey]))
	}
	return mergedEnvironment
}
