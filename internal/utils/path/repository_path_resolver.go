package pathutils

import (
	"path/filepath"
	"strings"
)

const (
	currentDirectoryPathConstant = "."
)

// RepositoryPathResolver normalizes a user-supplied checkout path into an absolute path.
type RepositoryPathResolver struct {
	homeExpander *HomeExpander
}

// NewRepositoryPathResolver constructs a RepositoryPathResolver. A nil expander uses the operating system lookup.
func NewRepositoryPathResolver(homeExpander *HomeExpander) *RepositoryPathResolver {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RepositoryPathResolver{homeExpander: homeExpander}
}

// Resolve trims whitespace, expands a leading tilde, and returns the cleaned absolute path.
// An empty candidate resolves to the current directory. When the absolute path cannot be
// determined the cleaned relative path is returned unchanged.
func (resolver *RepositoryPathResolver) Resolve(candidatePath string) string {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		trimmedCandidate = currentDirectoryPathConstant
	}

	expander := NewHomeExpander()
	if resolver != nil && resolver.homeExpander != nil {
		expander = resolver.homeExpander
	}

	cleanedPath := filepath.Clean(expander.Expand(trimmedCandidate))
	absolutePath, absoluteError := filepath.Abs(cleanedPath)
	if absoluteError != nil {
		return cleanedPath
	}
	return absolutePath
}
