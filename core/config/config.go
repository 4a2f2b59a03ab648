package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephlewis42/crsh/core/shell"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	AppLogName        = "app.log"
)

const (
	LineEditorAuto     = "auto"
	LineEditorReadline = "readline"
	LineEditorPlain    = "plain"
)

// ErrNoConfigDir is returned when accessing files of a configuration that
// wasn't loaded from a directory.
var ErrNoConfigDir = errors.New("configuration has no directory")

type Configuration struct {
	configurationDir string
	configFs         afero.Fs

	Prompt      string `json:"prompt"`
	ColorPrompt bool   `json:"color_prompt"`
	LineEditor  string `json:"line_editor" validate:"oneof=auto readline plain"`
	HistoryFile string `json:"history_file"`
	EventLog    bool   `json:"event_log"`

	Env Env `json:"env"`

	Limits Limits `json:"limits"`
}

type Env struct {
	SearchPath string `json:"search_path" validate:"required"`
	Home       string `json:"home" validate:"required"`
}

type Limits struct {
	LineCapacity   int `json:"line_capacity" validate:"gte=1"`
	ArgCapacity    int `json:"arg_capacity" validate:"gte=1"`
	PathCapacity   int `json:"path_capacity" validate:"gte=1"`
	ReadChunkSize  int `json:"read_chunk_size" validate:"gte=1"`
	MaxSourceDepth int `json:"max_source_depth" validate:"gte=0"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// ShellOptions converts the configuration to interpreter settings.
func (c *Configuration) ShellOptions() shell.Options {
	return shell.Options{
		Prompt:         c.Prompt,
		LineCapacity:   c.Limits.LineCapacity,
		ArgCapacity:    c.Limits.ArgCapacity,
		PathCapacity:   c.Limits.PathCapacity,
		ReadChunkSize:  c.Limits.ReadChunkSize,
		MaxSourceDepth: c.Limits.MaxSourceDepth,
		SearchPathEnv:  c.Env.SearchPath,
		HomeEnv:        c.Env.Home,
	}
}

// Dir returns the directory the configuration was loaded from, or an empty
// string for the default configuration.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

func (c *Configuration) fs() (afero.Fs, error) {
	if c.configFs == nil {
		return nil, ErrNoConfigDir
	}
	return c.configFs, nil
}

// HistoryPath returns the host path of the line editor history, or an empty
// string if history isn't persisted.
func (c *Configuration) HistoryPath() string {
	switch {
	case c.HistoryFile == "":
		return ""
	case filepath.IsAbs(c.HistoryFile):
		return c.HistoryFile
	case c.configurationDir == "":
		return ""
	default:
		return filepath.Join(c.configurationDir, c.HistoryFile)
	}
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	fs, err := c.fs()
	if err != nil {
		return nil, err
	}
	return fs.OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	fs, err := c.fs()
	if err != nil {
		return nil, err
	}
	return fs.OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration, it has no directory so
// nothing is persisted.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
