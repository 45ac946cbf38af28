package metadata

import (
	"strings"
	"time"

	"github.com/temirov/gitmeta/internal/repometa"
	"github.com/temirov/gitmeta/internal/report"
)

const (
	defaultRepositoryPathConstant              = "."
	repositoryConfigurationKeyConstant         = "repository"
	abbreviationLengthConfigurationKeyConstant = "abbreviation_length"
	outputConfigurationKeyConstant             = "output"
	timeoutConfigurationKeyConstant            = "timeout"
	configurationKeySeparatorConstant          = "."
)

// CommandConfiguration captures persisted settings shared by the metadata commands.
type CommandConfiguration struct {
	Repository         string        `mapstructure:"repository"`
	AbbreviationLength int           `mapstructure:"abbreviation_length"`
	Output             string        `mapstructure:"output"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// DefaultCommandConfiguration returns the baseline configuration for the metadata commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Repository:         defaultRepositoryPathConstant,
		AbbreviationLength: repometa.DefaultAbbreviationLength,
		Output:             string(report.FormatText),
		Timeout:            0,
	}
}

// DefaultConfigurationValues exposes the defaults keyed under the provided configuration prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		joinConfigurationKey(configurationPrefix, repositoryConfigurationKeyConstant):         defaults.Repository,
		joinConfigurationKey(configurationPrefix, abbreviationLengthConfigurationKeyConstant): defaults.AbbreviationLength,
		joinConfigurationKey(configurationPrefix, outputConfigurationKeyConstant):             defaults.Output,
		joinConfigurationKey(configurationPrefix, timeoutConfigurationKeyConstant):            defaults.Timeout,
	}
}

// Sanitize trims string fields and fills empty values with defaults. Negative
// abbreviation lengths are preserved so the accessor can reject them.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.Repository = strings.TrimSpace(sanitized.Repository)
	if len(sanitized.Repository) == 0 {
		sanitized.Repository = defaults.Repository
	}

	sanitized.Output = strings.ToLower(strings.TrimSpace(sanitized.Output))
	if len(sanitized.Output) == 0 {
		sanitized.Output = defaults.Output
	}

	if sanitized.Timeout < 0 {
		sanitized.Timeout = 0
	}

	return sanitized
}

func joinConfigurationKey(configurationPrefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(configurationPrefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
