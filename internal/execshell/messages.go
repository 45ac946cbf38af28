package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	outputLineSeparatorConstant             = "\n"
)

const (
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitTagSubcommandNameConstant      = "tag"
	gitLogSubcommandNameConstant      = "log"
	gitPointsAtFlagConstant           = "--points-at"
	gitNoMergedFlagConstant           = "--no-merged"
	gitCommitterDateFormatConstant    = "--pretty=%cd"
	gitFlagPrefixConstant             = "-"
)

const (
	gitRevisionStartTemplateConstant                 = "Resolving %s in %s"
	gitRevisionSuccessTemplateConstant               = "%s in %s resolved to %s"
	gitRevisionFailureTemplateConstant               = "Failed to resolve %s in %s (exit code %d%s)"
	gitRevisionExecutionFailureTemplateConstant      = "Unable to resolve %s in %s: %s"
	gitTagsPointingStartTemplateConstant             = "Listing tags pointing at %s in %s"
	gitTagsPointingSuccessTemplateConstant           = "Listed %d tags pointing at %s in %s"
	gitTagsPointingFailureTemplateConstant           = "Failed to list tags pointing at %s in %s (exit code %d%s)"
	gitTagsPointingExecutionFailureTemplateConstant  = "Unable to list tags pointing at %s in %s: %s"
	gitTagsUnreachedStartTemplateConstant            = "Listing tags not merged into %s in %s"
	gitTagsUnreachedSuccessTemplateConstant          = "Listed %d tags not merged into %s in %s"
	gitTagsUnreachedFailureTemplateConstant          = "Failed to list tags not merged into %s in %s (exit code %d%s)"
	gitTagsUnreachedExecutionFailureTemplateConstant = "Unable to list tags not merged into %s in %s: %s"
	gitCommitDateStartTemplateConstant               = "Reading committer date of %s in %s"
	gitCommitDateSuccessTemplateConstant             = "Committer date of %s in %s is %s"
	gitCommitDateFailureTemplateConstant             = "Failed to read committer date of %s in %s (exit code %d%s)"
	gitCommitDateExecutionFailureTemplateConstant    = "Unable to read committer date of %s in %s: %s"
	gitCommitMessageStartTemplateConstant            = "Reading commit message of %s in %s"
	gitCommitMessageSuccessTemplateConstant          = "Read commit message of %s in %s"
	gitCommitMessageFailureTemplateConstant          = "Failed to read commit message of %s in %s (exit code %d%s)"
	gitCommitMessageExecutionFailureTemplateConstant = "Unable to read commit message of %s in %s: %s"
)

// stageTemplates groups the message templates used across the lifecycle of one command kind.
type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	switch strings.TrimSpace(arguments[0]) {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitTagSubcommandNameConstant:
		return formatter.describeGitTagMessage(command, result, failure, stage)
	case gitLogSubcommandNameConstant:
		return formatter.describeGitLogMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	reference := formatter.resolveRevisionReference(command.Details.Arguments)
	workingDirectory := formatter.describeWorkingDirectory(command)
	templates := stageTemplates{
		start:            gitRevisionStartTemplateConstant,
		failure:          gitRevisionFailureTemplateConstant,
		executionFailure: gitRevisionExecutionFailureTemplateConstant,
	}
	if stage == messageStageSuccess {
		return fmt.Sprintf(gitRevisionSuccessTemplateConstant, reference, workingDirectory, formatter.ensureValue(result.StandardOutput))
	}
	return formatter.describeStage(templates, reference, workingDirectory, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitTagMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	var templates stageTemplates
	var reference string
	switch {
	case containsArgument(arguments, gitPointsAtFlagConstant):
		reference = findFlagValue(arguments, gitPointsAtFlagConstant)
		templates = stageTemplates{
			start:            gitTagsPointingStartTemplateConstant,
			success:          gitTagsPointingSuccessTemplateConstant,
			failure:          gitTagsPointingFailureTemplateConstant,
			executionFailure: gitTagsPointingExecutionFailureTemplateConstant,
		}
	case containsArgument(arguments, gitNoMergedFlagConstant):
		reference = findFlagValue(arguments, gitNoMergedFlagConstant)
		templates = stageTemplates{
			start:            gitTagsUnreachedStartTemplateConstant,
			success:          gitTagsUnreachedSuccessTemplateConstant,
			failure:          gitTagsUnreachedFailureTemplateConstant,
			executionFailure: gitTagsUnreachedExecutionFailureTemplateConstant,
		}
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	reference = formatter.ensureValue(reference)
	if stage == messageStageSuccess {
		return fmt.Sprintf(templates.success, countOutputLines(result.StandardOutput), reference, workingDirectory)
	}
	return formatter.describeStage(templates, reference, workingDirectory, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitLogMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	reference := formatter.resolveRevisionReference(arguments)
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitCommitterDateFormatConstant) {
		templates := stageTemplates{
			start:            gitCommitDateStartTemplateConstant,
			failure:          gitCommitDateFailureTemplateConstant,
			executionFailure: gitCommitDateExecutionFailureTemplateConstant,
		}
		if stage == messageStageSuccess {
			return fmt.Sprintf(gitCommitDateSuccessTemplateConstant, reference, workingDirectory, formatter.ensureValue(result.StandardOutput))
		}
		return formatter.describeStage(templates, reference, workingDirectory, result, failure, stage)
	}

	templates := stageTemplates{
		start:            gitCommitMessageStartTemplateConstant,
		failure:          gitCommitMessageFailureTemplateConstant,
		executionFailure: gitCommitMessageExecutionFailureTemplateConstant,
	}
	if stage == messageStageSuccess {
		return fmt.Sprintf(gitCommitMessageSuccessTemplateConstant, reference, workingDirectory)
	}
	return formatter.describeStage(templates, reference, workingDirectory, result, failure, stage)
}

// describeStage renders the start, failure, and execution failure stages that share a reference and directory.
func (formatter CommandMessageFormatter) describeStage(templates stageTemplates, reference string, workingDirectory string, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, reference, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, reference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, reference, workingDirectory, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

// resolveRevisionReference returns the last positional argument, which names the revision for rev-parse and log.
func (formatter CommandMessageFormatter) resolveRevisionReference(arguments []string) string {
	for argumentIndex := len(arguments) - 1; argumentIndex > 0; argumentIndex-- {
		candidate := strings.TrimSpace(arguments[argumentIndex])
		if len(candidate) == 0 || strings.HasPrefix(candidate, gitFlagPrefixConstant) {
			continue
		}
		return candidate
	}
	return fallbackUnknownValueLabelConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex := 0; argumentIndex < len(arguments)-1; argumentIndex++ {
		if strings.TrimSpace(arguments[argumentIndex]) == flag {
			return strings.TrimSpace(arguments[argumentIndex+1])
		}
	}
	return emptyStringConstant
}

func countOutputLines(output string) int {
	trimmedOutput := strings.TrimSpace(output)
	if len(trimmedOutput) == 0 {
		return 0
	}
	return len(strings.Split(trimmedOutput, outputLineSeparatorConstant))
}
