// Package report renders repository metadata as text, JSON, or YAML.
package report
