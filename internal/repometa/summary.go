package repometa

import (
	"context"
	"strings"
	"time"
)

// Summary aggregates every metadata query for one commit of a checkout.
type Summary struct {
	RepositoryPath string
	CurrentCommit  string
	Commit         string
	Tags           []string
	Message        string
	Date           string
	Datetime       time.Time
}

// Summarize runs all metadata queries for commit. An empty commit selects the
// checked-out commit as resolved by CurrentCommit. The first failing query aborts
// the summary.
func (accessor *Accessor) Summarize(executionContext context.Context, checkoutPath string, commit string, abbreviationLength int) (Summary, error) {
	if len(strings.TrimSpace(commit)) > 0 {
		if _, commitError := requireCommit(operationSummaryConstant, checkoutPath, commit); commitError != nil {
			return Summary{}, commitError
		}
	}

	currentCommit, currentCommitError := accessor.CurrentCommit(executionContext, checkoutPath, abbreviationLength)
	if currentCommitError != nil {
		return Summary{}, currentCommitError
	}

	selectedCommit := strings.TrimSpace(commit)
	if len(selectedCommit) == 0 {
		selectedCommit = currentCommit
	}

	tags, tagsError := accessor.LatestTags(executionContext, checkoutPath, selectedCommit)
	if tagsError != nil {
		return Summary{}, tagsError
	}

	message, messageError := accessor.CommitMessage(executionContext, checkoutPath, selectedCommit)
	if messageError != nil {
		return Summary{}, messageError
	}

	date, dateError := accessor.CommitDate(executionContext, checkoutPath, selectedCommit)
	if dateError != nil {
		return Summary{}, dateError
	}

	datetime, datetimeError := accessor.CommitDatetime(executionContext, checkoutPath, selectedCommit)
	if datetimeError != nil {
		return Summary{}, datetimeError
	}

	return Summary{
		RepositoryPath: checkoutPath,
		CurrentCommit:  currentCommit,
		Commit:         selectedCommit,
		Tags:           tags,
		Message:        message,
		Date:           date,
		Datetime:       datetime,
	}, nil
}
