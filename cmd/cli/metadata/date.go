package metadata

import (
	"context"

	"github.com/spf13/cobra"
)

const (
	dateCommandUseConstant                  = "date"
	dateCommandShortDescriptionConstant     = "Print the committer date of a commit"
	dateCommandLongDescriptionConstant      = "date prints the committer date of the commit (default HEAD) as YYYY-MM-DD in the committer's zone."
	datetimeCommandUseConstant              = "datetime"
	datetimeCommandShortDescriptionConstant = "Print the committer timestamp of a commit"
	datetimeCommandLongDescriptionConstant  = "datetime prints the committer timestamp of the commit (default HEAD) in RFC 3339 form, preserving the recorded zone offset."
)

// DateCommandBuilder assembles the date command.
type DateCommandBuilder struct {
	CommandDependencies
}

// Build constructs the date command.
func (builder *DateCommandBuilder) Build() (*cobra.Command, error) {
	return builder.buildCommand(commandDefinition{
		use:           dateCommandUseConstant,
		short:         dateCommandShortDescriptionConstant,
		long:          dateCommandLongDescriptionConstant,
		acceptsCommit: true,
		run:           runDateQuery,
	}), nil
}

// DatetimeCommandBuilder assembles the datetime command.
type DatetimeCommandBuilder struct {
	CommandDependencies
}

// Build constructs the datetime command.
func (builder *DatetimeCommandBuilder) Build() (*cobra.Command, error) {
	return builder.buildCommand(commandDefinition{
		use:           datetimeCommandUseConstant,
		short:         datetimeCommandShortDescriptionConstant,
		long:          datetimeCommandLongDescriptionConstant,
		acceptsCommit: true,
		run:           runDatetimeQuery,
	}), nil
}

func runDateQuery(executionContext context.Context, session querySession, commit string) error {
	date, queryError := session.accessor.CommitDate(executionContext, session.repositoryPath, commitOrHead(commit))
	if queryError != nil {
		return queryError
	}
	return session.renderer.RenderValue(date)
}

func runDatetimeQuery(executionContext context.Context, session querySession, commit string) error {
	datetime, queryError := session.accessor.CommitDatetime(executionContext, session.repositoryPath, commitOrHead(commit))
	if queryError != nil {
		return queryError
	}
	return session.renderer.RenderTime(datetime)
}
