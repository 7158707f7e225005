package xlcsv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/output"
)

// FileConfig is the YAML configuration file. Unset fields leave the
// corresponding option untouched.
type FileConfig struct {
	Delimiter  string `yaml:"delimiter"`
	Quote      *bool  `yaml:"quote"`
	LineEnding string `yaml:"line_ending"`
	Mode       string `yaml:"mode"`
	Compress   string `yaml:"compress"`
	Profile    *bool  `yaml:"profile"`
	Arrow      *bool  `yaml:"arrow"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
}

// LoadConfig loads a configuration from a YAML file. ${VAR} references are
// replaced with environment values before parsing.
func LoadConfig(filePath string) (*FileConfig, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	content := substituteEnvVars(string(data))

	var cfg FileConfig
	dec := yaml.NewDecoder(strings.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &cfg, nil
}

// Apply copies the set fields of c onto opts.
func (c *FileConfig) Apply(opts *Options) error {
	if c.Delimiter != "" {
		d, err := ParseDelimiter(c.Delimiter)
		if err != nil {
			return err
		}
		opts.Delimiter = d
	}
	if c.Quote != nil {
		q := *c.Quote
		opts.Quote = &q
	}
	if c.LineEnding != "" {
		le, err := ParseLineEnding(c.LineEnding)
		if err != nil {
			return err
		}
		opts.LineEnding = le
	}
	if c.Mode != "" {
		opts.Mode = Mode(c.Mode)
	}
	if c.Compress != "" {
		comp, err := output.ParseCompression(c.Compress)
		if err != nil {
			return err
		}
		opts.Compression = comp
	}
	if c.Profile != nil {
		opts.Profile = *c.Profile
	}
	if c.Arrow != nil {
		opts.Arrow = *c.Arrow
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	var b strings.Builder
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		b.WriteString(content[:start])
		b.WriteString(os.Getenv(content[start+2 : end]))
		content = content[end+1:]
	}
	b.WriteString(content)
	return b.String()
}
