package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	fixtureAuthorNameConstant       = "Fixture Author"
	fixtureAuthorEmailConstant      = "fixture@example.com"
	fixtureFileNameTemplateConstant = "change-%03d.txt"
	fixtureFilePermissionsConstant  = 0o644
)

// RepositoryFixture creates a git repository with deterministic history using go-git.
type RepositoryFixture struct {
	Path        string
	repository  *git.Repository
	worktree    *git.Worktree
	commitCount int
}

// NewRepositoryFixture initializes an empty non-bare repository at path.
func NewRepositoryFixture(path string) (*RepositoryFixture, error) {
	repository, initError := git.PlainInit(path, false)
	if initError != nil {
		return nil, initError
	}
	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return nil, worktreeError
	}
	return &RepositoryFixture{Path: path, repository: repository, worktree: worktree}, nil
}

// Commit writes a new file and commits it with message. Author and committer
// timestamps are both set to when.
func (fixture *RepositoryFixture) Commit(message string, when time.Time) (string, error) {
	fixture.commitCount++
	fileName := fmt.Sprintf(fixtureFileNameTemplateConstant, fixture.commitCount)
	if writeError := os.WriteFile(filepath.Join(fixture.Path, fileName), []byte(message), fixtureFilePermissionsConstant); writeError != nil {
		return "", writeError
	}
	if _, addError := fixture.worktree.Add(fileName); addError != nil {
		return "", addError
	}

	signature := fixtureSignature(when)
	commitHash, commitError := fixture.worktree.Commit(message, &git.CommitOptions{Author: signature, Committer: signature})
	if commitError != nil {
		return "", commitError
	}
	return commitHash.String(), nil
}

// Tag creates a lightweight tag pointing at commitHash.
func (fixture *RepositoryFixture) Tag(name string, commitHash string) error {
	_, tagError := fixture.repository.CreateTag(name, plumbing.NewHash(commitHash), nil)
	return tagError
}

// AnnotatedTag creates an annotated tag pointing at commitHash.
func (fixture *RepositoryFixture) AnnotatedTag(name string, commitHash string, message string, when time.Time) error {
	_, tagError := fixture.repository.CreateTag(name, plumbing.NewHash(commitHash), &git.CreateTagOptions{
		Tagger:  fixtureSignature(when),
		Message: message,
	})
	return tagError
}

// CurrentBranch returns the short name of the checked-out branch.
func (fixture *RepositoryFixture) CurrentBranch() (string, error) {
	headReference, headError := fixture.repository.Head()
	if headError != nil {
		return "", headError
	}
	return headReference.Name().Short(), nil
}

// CreateBranch creates branchName at commitHash and checks it out.
func (fixture *RepositoryFixture) CreateBranch(branchName string, commitHash string) error {
	return fixture.worktree.Checkout(&git.CheckoutOptions{
		Hash:   plumbing.NewHash(commitHash),
		Branch: plumbing.NewBranchReferenceName(branchName),
		Create: true,
		Force:  true,
	})
}

// Checkout switches to an existing branch.
func (fixture *RepositoryFixture) Checkout(branchName string) error {
	return fixture.worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branchName),
		Force:  true,
	})
}

func fixtureSignature(when time.Time) *object.Signature {
	return &object.Signature{Name: fixtureAuthorNameConstant, Email: fixtureAuthorEmailConstant, When: when}
}
