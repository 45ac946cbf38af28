// Package repometa answers read-only metadata questions about a local git checkout.
//
// Accessor resolves the checked-out commit, lists tags near a commit, and reads
// commit messages and committer timestamps by running git through an injected
// executor. Every failure is reported as a *QueryError whose reason matches one
// of the package sentinels under errors.Is.
package repometa
