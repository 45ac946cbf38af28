package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitmeta/internal/repometa"
)

const (
	formatTextStringConstant          = "text"
	formatJSONStringConstant          = "json"
	formatYAMLStringConstant          = "yaml"
	unsupportedFormatMessageConstant  = "unsupported output format"
	unsupportedFormatTemplateConstant = "%w: %s"
	writerMissingMessageConstant      = "report writer not configured"
	jsonIndentConstant                = "  "
	yamlIndentConstant                = 2
	textLineTemplateConstant          = "%s %s\n"
	textMessageIndentConstant         = "  "
	textTagSeparatorConstant          = ", "
	textNoTagsLabelConstant           = "(none)"
	newlineConstant                   = "\n"
	labelRepositoryConstant           = "Repository:"
	labelCurrentCommitConstant        = "Current commit:"
	labelCommitConstant               = "Commit:"
	labelTagsConstant                 = "Tags:"
	labelDateConstant                 = "Date:"
	labelDatetimeConstant             = "Datetime:"
	labelMessageConstant              = "Message:"
)

// Format enumerates supported output encodings.
type Format string

// Supported formats.
const (
	FormatText Format = Format(formatTextStringConstant)
	FormatJSON Format = Format(formatJSONStringConstant)
	FormatYAML Format = Format(formatYAMLStringConstant)
)

// ErrUnsupportedFormat indicates an unknown output format was requested.
var ErrUnsupportedFormat = errors.New(unsupportedFormatMessageConstant)

// ErrWriterNotConfigured indicates the renderer was constructed without a writer.
var ErrWriterNotConfigured = errors.New(writerMissingMessageConstant)

// Formats lists the supported formats in presentation order.
func Formats() []string {
	return []string{formatTextStringConstant, formatJSONStringConstant, formatYAMLStringConstant}
}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(rawFormat string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(rawFormat))) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplateConstant, ErrUnsupportedFormat, rawFormat)
	}
}

type summaryDocument struct {
	RepositoryPath string   `json:"repository_path" yaml:"repository_path"`
	CurrentCommit  string   `json:"current_commit" yaml:"current_commit"`
	Commit         string   `json:"commit" yaml:"commit"`
	Tags           []string `json:"tags" yaml:"tags"`
	Message        string   `json:"message" yaml:"message"`
	Date           string   `json:"date" yaml:"date"`
	Datetime       string   `json:"datetime" yaml:"datetime"`
}

// Renderer writes metadata values to a writer in one format.
type Renderer struct {
	writer     io.Writer
	format     Format
	labelStyle lipgloss.Style
}

// NewRenderer constructs a Renderer for the provided writer and format.
func NewRenderer(writer io.Writer, format Format) (*Renderer, error) {
	if writer == nil {
		return nil, ErrWriterNotConfigured
	}
	if _, formatError := ParseFormat(string(format)); formatError != nil {
		return nil, formatError
	}
	return &Renderer{
		writer:     writer,
		format:     format,
		labelStyle: lipgloss.NewStyle().Bold(true),
	}, nil
}

// RenderValue writes a single scalar such as a commit hash or date.
func (renderer *Renderer) RenderValue(value string) error {
	if renderer.format == FormatText {
		_, writeError := io.WriteString(renderer.writer, value+newlineConstant)
		return writeError
	}
	return renderer.encode(value)
}

// RenderTime writes an instant in RFC 3339 form, preserving its zone offset.
func (renderer *Renderer) RenderTime(value time.Time) error {
	return renderer.RenderValue(value.Format(time.RFC3339))
}

// RenderList writes an ordered list. Text output prints one entry per line and
// nothing for an empty list.
func (renderer *Renderer) RenderList(values []string) error {
	if values == nil {
		values = []string{}
	}
	if renderer.format != FormatText {
		return renderer.encode(values)
	}
	for _, value := range values {
		if _, writeError := io.WriteString(renderer.writer, value+newlineConstant); writeError != nil {
			return writeError
		}
	}
	return nil
}

// RenderSummary writes the aggregate metadata report.
func (renderer *Renderer) RenderSummary(summary repometa.Summary) error {
	tags := summary.Tags
	if tags == nil {
		tags = []string{}
	}
	document := summaryDocument{
		RepositoryPath: summary.RepositoryPath,
		CurrentCommit:  summary.CurrentCommit,
		Commit:         summary.Commit,
		Tags:           tags,
		Message:        summary.Message,
		Date:           summary.Date,
		Datetime:       summary.Datetime.Format(time.RFC3339),
	}
	if renderer.format != FormatText {
		return renderer.encode(document)
	}
	return renderer.writeTextSummary(document)
}

func (renderer *Renderer) writeTextSummary(document summaryDocument) error {
	tagsValue := textNoTagsLabelConstant
	if len(document.Tags) > 0 {
		tagsValue = strings.Join(document.Tags, textTagSeparatorConstant)
	}

	var builder strings.Builder
	renderer.writeTextLine(&builder, labelRepositoryConstant, document.RepositoryPath)
	renderer.writeTextLine(&builder, labelCurrentCommitConstant, document.CurrentCommit)
	renderer.writeTextLine(&builder, labelCommitConstant, document.Commit)
	renderer.writeTextLine(&builder, labelTagsConstant, tagsValue)
	renderer.writeTextLine(&builder, labelDateConstant, document.Date)
	renderer.writeTextLine(&builder, labelDatetimeConstant, document.Datetime)
	builder.WriteString(renderer.labelStyle.Render(labelMessageConstant))
	builder.WriteString(newlineConstant)
	for _, messageLine := range strings.Split(document.Message, newlineConstant) {
		builder.WriteString(strings.TrimRight(textMessageIndentConstant+messageLine, " "))
		builder.WriteString(newlineConstant)
	}

	_, writeError := io.WriteString(renderer.writer, builder.String())
	return writeError
}

func (renderer *Renderer) writeTextLine(builder *strings.Builder, label string, value string) {
	builder.WriteString(fmt.Sprintf(textLineTemplateConstant, renderer.labelStyle.Render(label), value))
}

func (renderer *Renderer) encode(value any) error {
	switch renderer.format {
	case FormatJSON:
		encoder := json.NewEncoder(renderer.writer)
		encoder.SetIndent("", jsonIndentConstant)
		return encoder.Encode(value)
	case FormatYAML:
		encoder := yaml.NewEncoder(renderer.writer)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(value); encodeError != nil {
			return encodeError
		}
		return encoder.Close()
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, ErrUnsupportedFormat, renderer.format)
	}
}
