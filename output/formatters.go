// Package output renders list-command results as text, JSON, or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AreaRow is one broadcast area in `areas` output.
type AreaRow struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
}

// StreamRow is one playlist URL in `streams` output.
type StreamRow struct {
	Area    string `json:"area" yaml:"area"`
	Channel string `json:"channel" yaml:"channel"`
	Station string `json:"station" yaml:"station"`
	URL     string `json:"url" yaml:"url"`
}

// ProgramRow is one channel's current program in `program` output.
type ProgramRow struct {
	Channel     string `json:"channel" yaml:"channel"`
	Station     string `json:"station" yaml:"station"`
	Title       string `json:"title" yaml:"title"`
	StartTime   string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Formatter renders command output in one format.
type Formatter interface {
	Format(data any) ([]byte, error)
}

// NewFormatter maps a --format flag value to a formatter.
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}
}

// JSONFormatter renders indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// YAMLFormatter renders YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(data any) ([]byte, error) {
	return yaml.Marshal(data)
}

// TextFormatter renders human-readable lists for the known row types.
type TextFormatter struct{}

func (f *TextFormatter) Format(data any) ([]byte, error) {
	var result strings.Builder

	switch rows := data.(type) {
	case []AreaRow:
		for _, row := range rows {
			fmt.Fprintf(&result, "%-12s %s\n", row.Key, row.Name)
		}
	case []StreamRow:
		for _, row := range rows {
			fmt.Fprintf(&result, "%-12s %-4s %-10s %s\n", row.Area, row.Channel, row.Station, row.URL)
		}
	case []ProgramRow:
		for i, row := range rows {
			if i > 0 {
				result.WriteString("\n")
			}
			fmt.Fprintf(&result, "%s (%s)\n", row.Station, row.Channel)
			fmt.Fprintf(&result, "  %s\n", row.Title)
			if row.StartTime != "" {
				fmt.Fprintf(&result, "  %s\n", row.StartTime)
			}
			if row.Description != "" {
				fmt.Fprintf(&result, "  %s\n", row.Description)
			}
		}
	default:
		return nil, fmt.Errorf("no text rendering for %T", data)
	}

	return []byte(result.String()), nil
}
