package execshell

import (
	"context"
	"fmt"
	"strings"
)

const (
	commandNameGitConstant                  = "git"
	commandFailedErrorTemplateConstant      = "%s failed with exit code %d"
	commandFailedWithStderrTemplateConstant = "%s failed with exit code %d: %s"
	commandExecutionErrorTemplateConstant   = "%s could not be executed: %v"
	commandLabelSeparatorConstant           = " "
)

// CommandName identifies an executable supported by the shell executor.
type CommandName string

// CommandGit identifies the git command-line client.
const CommandGit CommandName = CommandName(commandNameGitConstant)

// CommandDetails describes the arguments and environment of a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand combines an executable name with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner runs a single command to completion.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that exited with a non-zero status.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including its standard error output.
func (failure CommandFailedError) Error() string {
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, commandLabel(failure.Command), failure.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithStderrTemplateConstant, commandLabel(failure.Command), failure.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a command that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, commandLabel(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

func commandLabel(command ShellCommand) string {
	labelParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(labelParts, commandLabelSeparatorConstant)
}
