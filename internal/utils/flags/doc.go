// Package flags provides helpers for binding standardized metadata flags to Cobra commands.
package flags
