package metadata

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitmeta/internal/execshell"
	"github.com/temirov/gitmeta/internal/repometa"
	"github.com/temirov/gitmeta/internal/report"
	"github.com/temirov/gitmeta/internal/ui"
	"github.com/temirov/gitmeta/internal/utils"
	flagutils "github.com/temirov/gitmeta/internal/utils/flags"
	pathutils "github.com/temirov/gitmeta/internal/utils/path"
)

const (
	commitArgumentUseSuffixConstant   = " [commit]"
	queryStartedMessageConstant       = "metadata query started"
	logFieldCommandNameConstant       = "command_name"
	logFieldRepositoryConstant        = "repository"
	logFieldCommitConstant            = "commit"
	logFieldOutputConstant            = "output"
	logFieldTimeoutConstant           = "timeout"
	logFieldConfigurationFileConstant = "config_file"
	tooManyArgumentsMessageConstant   = "at most one commit reference may be provided"
)

var errTooManyArguments = errors.New(tooManyArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the metadata command configuration.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console logging is enabled.
type HumanReadableLoggingProvider func() bool

// CommandDependencies holds the collaborators shared by every metadata command builder.
type CommandDependencies struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	GitExecutor                  repometa.GitExecutor
	PathResolver                 *pathutils.RepositoryPathResolver
}

// querySession carries the resolved collaborators of one command invocation.
type querySession struct {
	accessor           *repometa.Accessor
	renderer           *report.Renderer
	repositoryPath     string
	abbreviationLength int
}

type queryRunner func(executionContext context.Context, session querySession, commit string) error

type commandDefinition struct {
	use                 string
	short               string
	long                string
	acceptsCommit       bool
	exposesAbbreviation bool
	run                 queryRunner
}

func (dependencies CommandDependencies) buildCommand(definition commandDefinition) *cobra.Command {
	use := definition.use
	argumentValidator := cobra.NoArgs
	if definition.acceptsCommit {
		use += commitArgumentUseSuffixConstant
		argumentValidator = func(command *cobra.Command, arguments []string) error {
			if len(arguments) > 1 {
				return errTooManyArguments
			}
			return nil
		}
	}

	command := &cobra.Command{
		Use:   use,
		Short: definition.short,
		Long:  definition.long,
		Args:  argumentValidator,
	}

	defaults := DefaultCommandConfiguration()
	flagValues := flagutils.BindMetadataFlags(command, flagutils.MetadataFlagValues{
		Repository:         defaults.Repository,
		Output:             defaults.Output,
		Timeout:            defaults.Timeout,
		AbbreviationLength: defaults.AbbreviationLength,
	}, flagutils.MetadataFlagDefinitions{
		Abbreviation:  definition.exposesAbbreviation,
		OutputChoices: report.Formats(),
	})

	command.RunE = func(command *cobra.Command, arguments []string) error {
		commit := ""
		if len(arguments) > 0 {
			commit = arguments[0]
		}

		session, sessionError := dependencies.openSession(command, *flagValues, commit)
		if sessionError != nil {
			return sessionError
		}

		return definition.run(commandContext(command), session, commit)
	}

	return command
}

func (dependencies CommandDependencies) openSession(command *cobra.Command, flagValues flagutils.MetadataFlagValues, commit string) (querySession, error) {
	configuration := dependencies.resolveConfiguration(command, flagValues)

	format, formatError := report.ParseFormat(configuration.Output)
	if formatError != nil {
		return querySession{}, formatError
	}

	renderer, rendererError := report.NewRenderer(command.OutOrStdout(), format)
	if rendererError != nil {
		return querySession{}, rendererError
	}

	logger := dependencies.resolveLogger()
	executor, executorError := dependencies.resolveExecutor(logger)
	if executorError != nil {
		return querySession{}, executorError
	}

	accessor, accessorError := repometa.NewAccessor(repometa.AccessorDependencies{
		GitExecutor: executor,
		Timeout:     configuration.Timeout,
	})
	if accessorError != nil {
		return querySession{}, accessorError
	}

	repositoryPath := dependencies.PathResolver.Resolve(configuration.Repository)

	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(commandContext(command))
	logger.Debug(
		queryStartedMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.String(logFieldRepositoryConstant, repositoryPath),
		zap.String(logFieldCommitConstant, commit),
		zap.String(logFieldOutputConstant, string(format)),
		zap.Duration(logFieldTimeoutConstant, configuration.Timeout),
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
	)

	return querySession{
		accessor:           accessor,
		renderer:           renderer,
		repositoryPath:     repositoryPath,
		abbreviationLength: configuration.AbbreviationLength,
	}, nil
}

func (dependencies CommandDependencies) resolveConfiguration(command *cobra.Command, flagValues flagutils.MetadataFlagValues) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if dependencies.ConfigurationProvider != nil {
		configuration = dependencies.ConfigurationProvider()
	}
	configuration = configuration.Sanitize()

	flagSet := command.Flags()
	if flagSet.Changed(flagutils.RepositoryFlagName) {
		configuration.Repository = flagValues.Repository
	}
	if flagSet.Changed(flagutils.OutputFlagName) {
		configuration.Output = flagValues.Output
	}
	if flagSet.Changed(flagutils.TimeoutFlagName) {
		configuration.Timeout = flagValues.Timeout
	}
	if flagSet.Changed(flagutils.AbbreviationFlagName) {
		configuration.AbbreviationLength = flagValues.AbbreviationLength
	}

	return configuration.Sanitize()
}

func (dependencies CommandDependencies) resolveLogger() *zap.Logger {
	if dependencies.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := dependencies.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (dependencies CommandDependencies) resolveExecutor(logger *zap.Logger) (repometa.GitExecutor, error) {
	if dependencies.GitExecutor != nil {
		return dependencies.GitExecutor, nil
	}

	var observers []execshell.CommandEventObserver
	if dependencies.HumanReadableLoggingProvider != nil && dependencies.HumanReadableLoggingProvider() {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}

func commandContext(command *cobra.Command) context.Context {
	if command == nil || command.Context() == nil {
		return context.Background()
	}
	return command.Context()
}
