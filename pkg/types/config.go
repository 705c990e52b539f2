package types

import (
	"errors"
	"unicode/utf8"
)

// Glossary source formats.
const (
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
	FormatJSONL = "jsonl"
)

// Feedback log backends.
const (
	FeedbackBackendCSV    = "csv"
	FeedbackBackendSQLite = "sqlite"
)

// Result rendering styles.
const (
	StyleCard  = "card"
	StylePlain = "plain"
)

// Source selector controls.
const (
	ControlDropdown = "dropdown"
	ControlRadio    = "radio"
)

// Defaults applied when a field is left empty.
const (
	DefaultGlossaryPath  = "glossary.csv"
	DefaultDelimiter     = ";"
	DefaultSheet         = "Glossary"
	DefaultFeedbackFile  = "feedback.csv"
	DefaultServerAddress = ":8080"
)

// GlossaryConfig locates and describes the glossary source.
type GlossaryConfig struct {
	Path      string `json:"path" yaml:"path" mapstructure:"path"`
	Format    string `json:"format" yaml:"format" mapstructure:"format"`
	Delimiter string `json:"delimiter" yaml:"delimiter" mapstructure:"delimiter"`
	Sheet     string `json:"sheet" yaml:"sheet" mapstructure:"sheet"`
}

// FeedbackConfig selects the feedback log backend and its shape.
// RequireName selects the three-field variant (Timestamp, Name, Feedback).
type FeedbackConfig struct {
	Backend     string `json:"backend" yaml:"backend" mapstructure:"backend"`
	File        string `json:"file" yaml:"file" mapstructure:"file"`
	RequireName bool   `json:"require_name" yaml:"require_name" mapstructure:"require_name"`
}

// PresentationConfig holds the cosmetic variant of the browser.
type PresentationConfig struct {
	Style         string `json:"style" yaml:"style" mapstructure:"style"`
	SourceControl string `json:"source_control" yaml:"source_control" mapstructure:"source_control"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Config is the full runtime configuration.
type Config struct {
	DataDir      string             `json:"data_dir" yaml:"data_dir,omitempty" mapstructure:"data_dir"`
	LogLevel     string             `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	Glossary     GlossaryConfig     `json:"glossary" yaml:"glossary" mapstructure:"glossary"`
	Feedback     FeedbackConfig     `json:"feedback" yaml:"feedback" mapstructure:"feedback"`
	Presentation PresentationConfig `json:"presentation" yaml:"presentation" mapstructure:"presentation"`
	Server       ServerConfig       `json:"server" yaml:"server" mapstructure:"server"`
}

// Config validation errors.
var (
	ErrFormatUnknown          = errors.New("unknown glossary format")
	ErrDelimiterInvalid       = errors.New("delimiter must be a single character other than a quote or line break")
	ErrFeedbackBackendUnknown = errors.New("unknown feedback backend")
	ErrStyleUnknown           = errors.New("unknown presentation style")
	ErrSourceControlUnknown   = errors.New("unknown source control")
)

var (
	knownFormats          = map[string]bool{"": true, FormatCSV: true, FormatXLSX: true, FormatJSONL: true}
	knownFeedbackBackends = map[string]bool{FeedbackBackendCSV: true, FeedbackBackendSQLite: true}
	knownStyles           = map[string]bool{StyleCard: true, StylePlain: true}
	knownSourceControls   = map[string]bool{ControlDropdown: true, ControlRadio: true}
)

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Glossary: GlossaryConfig{
			Path:      DefaultGlossaryPath,
			Delimiter: DefaultDelimiter,
			Sheet:     DefaultSheet,
		},
		Feedback: FeedbackConfig{
			Backend: FeedbackBackendCSV,
			File:    DefaultFeedbackFile,
		},
		Presentation: PresentationConfig{
			Style:         StyleCard,
			SourceControl: ControlDropdown,
		},
		Server: ServerConfig{Addr: DefaultServerAddress},
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if !knownFormats[c.Glossary.Format] {
		return ErrFormatUnknown
	}
	if !validDelimiter(c.Glossary.Delimiter) {
		return ErrDelimiterInvalid
	}
	if !knownFeedbackBackends[c.Feedback.Backend] {
		return ErrFeedbackBackendUnknown
	}
	if !knownStyles[c.Presentation.Style] {
		return ErrStyleUnknown
	}
	if !knownSourceControls[c.Presentation.SourceControl] {
		return ErrSourceControlUnknown
	}
	return nil
}

// validDelimiter accepts exactly one rune that a CSV reader can split on.
func validDelimiter(d string) bool {
	r, size := utf8.DecodeRuneInString(d)
	if size == 0 || size != len(d) || r == utf8.RuneError {
		return false
	}
	switch r {
	case 0, '"', '\r', '\n':
		return false
	}
	return true
}
