package metadata

import (
	"context"

	"github.com/spf13/cobra"
)

const (
	commitCommandUseConstant              = "commit"
	commitCommandShortDescriptionConstant = "Print the checked-out commit hash"
	commitCommandLongDescriptionConstant  = "commit prints the hash of the commit checked out in the repository, abbreviated to --abbrev hex digits."
)

// CommitCommandBuilder assembles the commit command.
type CommitCommandBuilder struct {
	CommandDependencies
}

// Build constructs the commit command.
func (builder *CommitCommandBuilder) Build() (*cobra.Command, error) {
	return builder.buildCommand(commandDefinition{
		use:                 commitCommandUseConstant,
		short:               commitCommandShortDescriptionConstant,
		long:                commitCommandLongDescriptionConstant,
		exposesAbbreviation: true,
		run:                 runCommitQuery,
	}), nil
}

func runCommitQuery(executionContext context.Context, session querySession, _ string) error {
	commitHash, queryError := session.accessor.CurrentCommit(executionContext, session.repositoryPath, session.abbreviationLength)
	if queryError != nil {
		return queryError
	}
	return session.renderer.RenderValue(commitHash)
}
