package utils

import (
	"context"
	"strings"
)

type commandContextKey struct{}

// commandContextValues holds the values the root command shares with subcommands.
type commandContextValues struct {
	configurationFilePath string
}

// CommandContextAccessor stores and retrieves values shared through Cobra command contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the configuration file the application loaded.
// A nil parent is replaced with context.Background.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	values := accessor.values(parentContext)
	values.configurationFilePath = strings.TrimSpace(configurationFilePath)
	return context.WithValue(parentContext, commandContextKey{}, values)
}

// ConfigurationFilePath reports the recorded configuration file path. The boolean is
// false when no path was recorded or the application ran on embedded defaults only.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	values := accessor.values(executionContext)
	if len(values.configurationFilePath) == 0 {
		return "", false
	}
	return values.configurationFilePath, true
}

func (accessor CommandContextAccessor) values(executionContext context.Context) commandContextValues {
	values, _ := executionContext.Value(commandContextKey{}).(commandContextValues)
	return values
}
