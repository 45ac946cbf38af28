// Package metadata provides the Cobra commands that report commit hashes, tags,
// messages, and dates of a local git checkout.
package metadata
