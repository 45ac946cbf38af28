package metadata

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/gitmeta/internal/repometa"
)

const (
	messageCommandUseConstant              = "message"
	messageCommandShortDescriptionConstant = "Print the full message of a commit"
	messageCommandLongDescriptionConstant  = "message prints the subject and body of the commit (default HEAD)."
)

// MessageCommandBuilder assembles the message command.
type MessageCommandBuilder struct {
	CommandDependencies
}

// Build constructs the message command.
func (builder *MessageCommandBuilder) Build() (*cobra.Command, error) {
	return builder.buildCommand(commandDefinition{
		use:           messageCommandUseConstant,
		short:         messageCommandShortDescriptionConstant,
		long:          messageCommandLongDescriptionConstant,
		acceptsCommit: true,
		run:           runMessageQuery,
	}), nil
}

func runMessageQuery(executionContext context.Context, session querySession, commit string) error {
	message, queryError := session.accessor.CommitMessage(executionContext, session.repositoryPath, commitOrHead(commit))
	if queryError != nil {
		return queryError
	}
	return session.renderer.RenderValue(message)
}

func commitOrHead(commit string) string {
	trimmedCommit := strings.TrimSpace(commit)
	if len(trimmedCommit) == 0 {
		return repometa.DefaultCommitReference
	}
	return trimmedCommit
}
