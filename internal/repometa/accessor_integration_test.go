package repometa_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitmeta/internal/execshell"
	"github.com/temirov/gitmeta/internal/repometa"
	"github.com/temirov/gitmeta/internal/repometa/testsupport"
)

var (
	integrationInitialTime   = time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	integrationAncestorTime  = time.Date(2024, time.February, 15, 9, 0, 0, 0, time.UTC)
	integrationHeadTime      = time.Date(2024, time.March, 1, 12, 30, 45, 0, time.FixedZone("", 2*60*60))
	integrationSideEarlyTime = time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC)
	integrationSideLateTime  = time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	hexadecimalPattern       = regexp.MustCompile(`^[0-9a-f]+$`)
	calendarDatePattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

const integrationHeadMessageConstant = "Fix bug\n\nDetails here."

type integrationHistory struct {
	fixture      *testsupport.RepositoryFixture
	initialHash  string
	ancestorHash string
	headHash     string
}

func requireGitExecutable(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(string(execshell.CommandGit)); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
}

func newIntegrationAccessor(testInstance *testing.T) *repometa.Accessor {
	testInstance.Helper()
	shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(testInstance, executorError)
	accessor, accessorError := repometa.NewAccessor(repometa.AccessorDependencies{GitExecutor: shellExecutor, Timeout: time.Minute})
	require.NoError(testInstance, accessorError)
	return accessor
}

// buildReleaseHistory creates three linear commits with v1.9.0 on the second and v2.0.0 on HEAD.
func buildReleaseHistory(testInstance *testing.T) integrationHistory {
	testInstance.Helper()
	fixture, fixtureError := testsupport.NewRepositoryFixture(testInstance.TempDir())
	require.NoError(testInstance, fixtureError)

	initialHash, initialError := fixture.Commit("Initial commit", integrationInitialTime)
	require.NoError(testInstance, initialError)
	ancestorHash, ancestorError := fixture.Commit("Release 1.9.0", integrationAncestorTime)
	require.NoError(testInstance, ancestorError)
	require.NoError(testInstance, fixture.Tag("v1.9.0", ancestorHash))
	headHash, headError := fixture.Commit(integrationHeadMessageConstant, integrationHeadTime)
	require.NoError(testInstance, headError)
	require.NoError(testInstance, fixture.Tag("v2.0.0", headHash))

	return integrationHistory{fixture: fixture, initialHash: initialHash, ancestorHash: ancestorHash, headHash: headHash}
}

// addSideBranch forks from the initial commit and tags two commits never merged into HEAD.
func addSideBranch(testInstance *testing.T, history integrationHistory) {
	testInstance.Helper()
	mainBranch, branchError := history.fixture.CurrentBranch()
	require.NoError(testInstance, branchError)

	require.NoError(testInstance, history.fixture.CreateBranch("experiments", history.initialHash))
	earlyHash, earlyError := history.fixture.Commit("Experiment one", integrationSideEarlyTime)
	require.NoError(testInstance, earlyError)
	require.NoError(testInstance, history.fixture.Tag("experiment-1", earlyHash))
	lateHash, lateError := history.fixture.Commit("Experiment two", integrationSideLateTime)
	require.NoError(testInstance, lateError)
	require.NoError(testInstance, history.fixture.Tag("experiment-2", lateHash))

	require.NoError(testInstance, history.fixture.Checkout(mainBranch))
}

func TestAccessorAgainstGitRepository(testInstance *testing.T) {
	requireGitExecutable(testInstance)
	history := buildReleaseHistory(testInstance)
	accessor := newIntegrationAccessor(testInstance)
	executionContext := context.Background()
	checkoutPath := history.fixture.Path

	testInstance.Run("current_commit", func(testInstance *testing.T) {
		for _, abbreviationLength := range []int{4, 7, repometa.DefaultAbbreviationLength, 12} {
			commit, queryError := accessor.CurrentCommit(executionContext, checkoutPath, abbreviationLength)
			require.NoError(testInstance, queryError)
			require.Len(testInstance, commit, abbreviationLength)
			require.Regexp(testInstance, hexadecimalPattern, commit)
			require.Equal(testInstance, history.headHash[:abbreviationLength], commit)
		}

		fullCommit, fullError := accessor.CurrentCommit(executionContext, checkoutPath, 0)
		require.NoError(testInstance, fullError)
		require.Len(testInstance, fullCommit, 40)
		require.Equal(testInstance, history.headHash, fullCommit)
	})

	testInstance.Run("latest_tags_at_head", func(testInstance *testing.T) {
		tags, queryError := accessor.LatestTags(executionContext, checkoutPath, repometa.DefaultCommitReference)
		require.NoError(testInstance, queryError)
		require.Equal(testInstance, []string{"v2.0.0"}, tags)
	})

	testInstance.Run("commit_message", func(testInstance *testing.T) {
		message, queryError := accessor.CommitMessage(executionContext, checkoutPath, repometa.DefaultCommitReference)
		require.NoError(testInstance, queryError)
		require.Equal(testInstance, integrationHeadMessageConstant, message)
	})

	testInstance.Run("commit_date", func(testInstance *testing.T) {
		for _, commit := range []string{history.initialHash, history.ancestorHash, repometa.DefaultCommitReference} {
			date, queryError := accessor.CommitDate(executionContext, checkoutPath, commit)
			require.NoError(testInstance, queryError)
			require.Len(testInstance, date, 10)
			require.Regexp(testInstance, calendarDatePattern, date)
		}

		headDate, headError := accessor.CommitDate(executionContext, checkoutPath, repometa.DefaultCommitReference)
		require.NoError(testInstance, headError)
		require.Equal(testInstance, "2024-03-01", headDate)
	})

	testInstance.Run("commit_datetime", func(testInstance *testing.T) {
		datetime, queryError := accessor.CommitDatetime(executionContext, checkoutPath, repometa.DefaultCommitReference)
		require.NoError(testInstance, queryError)
		require.True(testInstance, integrationHeadTime.Equal(datetime))
		_, zoneOffset := datetime.Zone()
		require.Equal(testInstance, 2*60*60, zoneOffset)
	})

	testInstance.Run("unknown_commit", func(testInstance *testing.T) {
		_, messageError := accessor.CommitMessage(executionContext, checkoutPath, "does-not-exist")
		require.ErrorIs(testInstance, messageError, repometa.ErrCommitNotFound)

		_, tagsError := accessor.LatestTags(executionContext, checkoutPath, "does-not-exist")
		require.ErrorIs(testInstance, tagsError, repometa.ErrCommitNotFound)
	})

	testInstance.Run("option_like_commit", func(testInstance *testing.T) {
		writtenPath := filepath.Join(checkoutPath, "written.txt")

		_, messageError := accessor.CommitMessage(executionContext, checkoutPath, "--output=written.txt")
		require.ErrorIs(testInstance, messageError, repometa.ErrCommitNotFound)
		require.NoFileExists(testInstance, writtenPath)

		_, dateError := accessor.CommitDate(executionContext, checkoutPath, "--all")
		require.ErrorIs(testInstance, dateError, repometa.ErrCommitNotFound)
	})
}

func TestAccessorListsTagsNotMergedIntoCommit(testInstance *testing.T) {
	requireGitExecutable(testInstance)
	history := buildReleaseHistory(testInstance)
	addSideBranch(testInstance, history)
	accessor := newIntegrationAccessor(testInstance)

	headTags, headError := accessor.LatestTags(context.Background(), history.fixture.Path, repometa.DefaultCommitReference)
	require.NoError(testInstance, headError)
	require.Equal(testInstance, []string{"v2.0.0", "experiment-2", "experiment-1"}, headTags)

	ancestorTags, ancestorError := accessor.LatestTags(context.Background(), history.fixture.Path, history.ancestorHash)
	require.NoError(testInstance, ancestorError)
	require.Equal(testInstance, []string{"v1.9.0", "experiment-2", "experiment-1", "v2.0.0"}, ancestorTags)
}

func TestAccessorReturnsEmptyTagListForUntaggedRepository(testInstance *testing.T) {
	requireGitExecutable(testInstance)
	fixture, fixtureError := testsupport.NewRepositoryFixture(testInstance.TempDir())
	require.NoError(testInstance, fixtureError)
	_, commitError := fixture.Commit("Initial commit", integrationInitialTime)
	require.NoError(testInstance, commitError)

	tags, queryError := newIntegrationAccessor(testInstance).LatestTags(context.Background(), fixture.Path, repometa.DefaultCommitReference)
	require.NoError(testInstance, queryError)
	require.NotNil(testInstance, tags)
	require.Empty(testInstance, tags)
}

func TestAccessorRejectsPathsOutsideRepositories(testInstance *testing.T) {
	requireGitExecutable(testInstance)
	accessor := newIntegrationAccessor(testInstance)
	missingPath := filepath.Join(testInstance.TempDir(), "missing")

	_, missingError := accessor.CurrentCommit(context.Background(), missingPath, repometa.DefaultAbbreviationLength)
	require.ErrorIs(testInstance, missingError, repometa.ErrInvalidPath)

	plainDirectory := testInstance.TempDir()
	_, plainError := accessor.CommitMessage(context.Background(), plainDirectory, repometa.DefaultCommitReference)
	require.ErrorIs(testInstance, plainError, repometa.ErrInvalidPath)
}

func TestAccessorSummarizesGitRepository(testInstance *testing.T) {
	requireGitExecutable(testInstance)
	history := buildReleaseHistory(testInstance)

	summary, summaryError := newIntegrationAccessor(testInstance).Summarize(context.Background(), history.fixture.Path, "", 0)
	require.NoError(testInstance, summaryError)
	require.Equal(testInstance, history.headHash, summary.CurrentCommit)
	require.Equal(testInstance, history.headHash, summary.Commit)
	require.Equal(testInstance, []string{"v2.0.0"}, summary.Tags)
	require.Equal(testInstance, integrationHeadMessageConstant, summary.Message)
	require.Equal(testInstance, "2024-03-01", summary.Date)
	require.True(testInstance, integrationHeadTime.Equal(summary.Datetime))
}
