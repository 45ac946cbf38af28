package testsupport

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/gitmeta/internal/execshell"
)

const (
	argumentKeySeparatorConstant      = " "
	unexpectedCommandTemplateConstant = "unexpected git command: %s"
)

// GitResponse configures the outcome returned for one git argument list.
type GitResponse struct {
	Result execshell.ExecutionResult
	Err    error
}

// GitExecutorStub returns scripted responses keyed by the space-joined git arguments
// and records every invocation.
type GitExecutorStub struct {
	Responses        map[string]GitResponse
	ExecutedCommands []execshell.CommandDetails
}

// ExecuteGit records the command and returns the configured response.
func (executor *GitExecutorStub) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.ExecutedCommands = append(executor.ExecutedCommands, details)
	argumentKey := strings.Join(details.Arguments, argumentKeySeparatorConstant)
	response, exists := executor.Responses[argumentKey]
	if !exists {
		return execshell.ExecutionResult{}, fmt.Errorf(unexpectedCommandTemplateConstant, argumentKey)
	}
	if response.Err != nil {
		return execshell.ExecutionResult{}, response.Err
	}
	return response.Result, nil
}

// ExecutedArguments returns the space-joined arguments of every recorded command in order.
func (executor *GitExecutorStub) ExecutedArguments() []string {
	executed := make([]string, 0, len(executor.ExecutedCommands))
	for _, details := range executor.ExecutedCommands {
		executed = append(executed, strings.Join(details.Arguments, argumentKeySeparatorConstant))
	}
	return executed
}

// Output builds a successful response carrying standard output.
func Output(standardOutput string) GitResponse {
	return GitResponse{Result: execshell.ExecutionResult{StandardOutput: standardOutput}}
}

// Failure builds a CommandFailedError response as ShellExecutor reports non-zero exits.
func Failure(arguments []string, exitCode int, standardError string) GitResponse {
	result := execshell.ExecutionResult{StandardError: standardError, ExitCode: exitCode}
	return GitResponse{Err: execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: arguments}},
		Result:  result,
	}}
}
