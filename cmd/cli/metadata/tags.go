package metadata

import (
	"context"

	"github.com/spf13/cobra"
)

const (
	tagsCommandUseConstant              = "tags"
	tagsCommandShortDescriptionConstant = "List tags at and beyond a commit, newest first"
	tagsCommandLongDescriptionConstant  = "tags lists the tags pointing at the commit (default HEAD) followed by the tags not yet merged into it, each group ordered by committer date, newest first."
)

// TagsCommandBuilder assembles the tags command.
type TagsCommandBuilder struct {
	CommandDependencies
}

// Build constructs the tags command.
func (builder *TagsCommandBuilder) Build() (*cobra.Command, error) {
	return builder.buildCommand(commandDefinition{
		use:           tagsCommandUseConstant,
		short:         tagsCommandShortDescriptionConstant,
		long:          tagsCommandLongDescriptionConstant,
		acceptsCommit: true,
		run:           runTagsQuery,
	}), nil
}

func runTagsQuery(executionContext context.Context, session querySession, commit string) error {
	tags, queryError := session.accessor.LatestTags(executionContext, session.repositoryPath, commitOrHead(commit))
	if queryError != nil {
		return queryError
	}
	return session.renderer.RenderList(tags)
}
