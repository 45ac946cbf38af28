package metadata

import (
	"context"

	"github.com/spf13/cobra"
)

const (
	summaryCommandUseConstant              = "summary"
	summaryCommandShortDescriptionConstant = "Report every metadata value of a commit"
	summaryCommandLongDescriptionConstant  = "summary reports the checked-out commit, the selected commit (default: the checked-out one), its tags, message, date, and timestamp. The first failing query aborts the report."
)

// SummaryCommandBuilder assembles the summary command.
type SummaryCommandBuilder struct {
	CommandDependencies
}

// Build constructs the summary command.
func (builder *SummaryCommandBuilder) Build() (*cobra.Command, error) {
	return builder.buildCommand(commandDefinition{
		use:                 summaryCommandUseConstant,
		short:               summaryCommandShortDescriptionConstant,
		long:                summaryCommandLongDescriptionConstant,
		acceptsCommit:       true,
		exposesAbbreviation: true,
		run:                 runSummaryQuery,
	}), nil
}

func runSummaryQuery(executionContext context.Context, session querySession, commit string) error {
	summary, queryError := session.accessor.Summarize(executionContext, session.repositoryPath, commit, session.abbreviationLength)
	if queryError != nil {
		return queryError
	}
	return session.renderer.RenderSummary(summary)
}
