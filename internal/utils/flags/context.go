package flags

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	// RepositoryFlagName exposes the shared checkout path flag name.
	RepositoryFlagName = "repository"
	// RepositoryFlagShorthand provides the shorthand for the checkout path flag.
	RepositoryFlagShorthand = "C"
	// RepositoryFlagUsage describes the checkout path flag purpose.
	RepositoryFlagUsage = "Path to the git checkout to inspect"
	// OutputFlagName exposes the shared output format flag name.
	OutputFlagName = "output"
	// OutputFlagShorthand provides the shorthand for the output format flag.
	OutputFlagShorthand = "o"
	// OutputFlagDescription describes the output format flag purpose.
	OutputFlagDescription = "Output format."
	// TimeoutFlagName exposes the shared git invocation timeout flag name.
	TimeoutFlagName = "timeout"
	// TimeoutFlagUsage describes the timeout flag purpose.
	TimeoutFlagUsage = "Maximum duration of each git invocation (0 disables the limit)"
	// AbbreviationFlagName exposes the commit abbreviation length flag name.
	AbbreviationFlagName = "abbrev"
	// AbbreviationFlagUsage describes the abbreviation flag purpose.
	AbbreviationFlagUsage = "Length of the abbreviated commit hash (0 prints the full hash)"
)

// MetadataFlagValues stores metadata command flag values.
type MetadataFlagValues struct {
	Repository         string
	Output             string
	Timeout            time.Duration
	AbbreviationLength int
}

// MetadataFlagDefinitions selects the optional metadata flags a command exposes.
// Repository, output, and timeout flags are always bound.
type MetadataFlagDefinitions struct {
	Abbreviation  bool
	OutputChoices []string
}

// BindMetadataFlags attaches the metadata flags to the provided command using local scope.
func BindMetadataFlags(command *cobra.Command, defaults MetadataFlagValues, definitions MetadataFlagDefinitions) *MetadataFlagValues {
	values := defaults
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	if flagSet.Lookup(RepositoryFlagName) == nil {
		flagSet.StringVarP(&values.Repository, RepositoryFlagName, RepositoryFlagShorthand, defaults.Repository, RepositoryFlagUsage)
	}
	if flagSet.Lookup(OutputFlagName) == nil {
		flagSet.StringVarP(&values.Output, OutputFlagName, OutputFlagShorthand, defaults.Output, FormatChoiceUsage(defaults.Output, definitions.OutputChoices, OutputFlagDescription))
	}
	if flagSet.Lookup(TimeoutFlagName) == nil {
		flagSet.DurationVar(&values.Timeout, TimeoutFlagName, defaults.Timeout, TimeoutFlagUsage)
	}
	if definitions.Abbreviation && flagSet.Lookup(AbbreviationFlagName) == nil {
		flagSet.IntVar(&values.AbbreviationLength, AbbreviationFlagName, defaults.AbbreviationLength, AbbreviationFlagUsage)
	}

	return &values
}
