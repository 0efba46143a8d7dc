package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

// File is an optional TOML or YAML file whose keys are flag names. Explicit flags
// and environment variables win over the file.
type File struct {
	Path string
}

// Flags returns CLI flags for the configuration file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a configuration file (.toml, .yaml or .yml)",
			Destination: &c.Path,
			Sources:     cli.EnvVars("GHRELEASE_CONFIG"),
		},
	}
}

// Apply sets every flag of cmd that is named in the file and was not set otherwise.
// Keys of other commands listed in shared are skipped, any other key is an error.
func (c *File) Apply(cmd *cli.Command, shared ...cli.Flag) error {
	if c.Path == "" {
		return nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "config"),
			goerr.V("path", c.Path))
	}

	var values map[string]any
	unmarshal := toml.Unmarshal
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	}
	if err := unmarshal(raw, &values); err != nil {
		return goerr.Wrap(err, "failed to parse config file",
			goerr.T(types.ErrTagConfig),
			goerr.V("field", "config"),
			goerr.V("path", c.Path))
	}

	own := flagSet(cmd.Flags)
	others := flagSet(shared)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if !own[key] {
			if others[key] {
				continue
			}
			return goerr.New("unknown key in config file",
				goerr.T(types.ErrTagConfig),
				goerr.V("field", "config"),
				goerr.V("key", key),
				goerr.V("path", c.Path))
		}
		if key == "config" {
			return goerr.New("config file cannot refer to another config file",
				goerr.T(types.ErrTagConfig),
				goerr.V("field", "config"),
				goerr.V("path", c.Path))
		}
		if cmd.IsSet(key) {
			continue
		}

		items, err := tomlValues(values[key])
		if err != nil {
			return goerr.Wrap(err, "invalid value in config file",
				goerr.T(types.ErrTagConfig),
				goerr.V("field", "config"),
				goerr.V("key", key))
		}
		for _, item := range items {
			if err := cmd.Set(key, item); err != nil {
				return goerr.Wrap(err, "invalid value in config file",
					goerr.T(types.ErrTagConfig),
					goerr.V("field", "config"),
					goerr.V("key", key))
			}
		}
	}

	return nil
}

func flagSet(flags []cli.Flag) map[string]bool {
	set := make(map[string]bool)
	for _, f := range flags {
		for _, name := range f.Names() {
			set[name] = true
		}
	}
	return set
}

func tomlValues(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case bool:
		return []string{strconv.FormatBool(t)}, nil
	case int:
		return []string{strconv.Itoa(t)}, nil
	case int64:
		return []string{strconv.FormatInt(t, 10)}, nil
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}, nil
	case []any:
		var out []string
		for _, item := range t {
			s, err := tomlValues(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s...)
		}
		return out, nil
	default:
		return nil, goerr.New("unsupported value type", goerr.V("type", fmt.Sprintf("%T", v)))
	}
}
