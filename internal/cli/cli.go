package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/dimgrid/internal/app"
	"github.com/specialistvlad/dimgrid/internal/render"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable that can stand in for a flag,
// e.g. DIMGRID_LOG_LEVEL for --log-level.
const EnvPrefix = "DIMGRID"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Flags take precedence over DIMGRID_* environment variables, which take
// precedence over the optional --config file.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet("dimgrid", pflag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
dimgrid - resolves declarative dimension, unit and constant definitions.

Usage:
  dimgrid [options] PATH...

Arguments:
  PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	formats := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		formats = append(formats, string(f))
	}
	flagSet.StringP("format", "f", string(render.FormatText), "Report format. Options: "+strings.Join(formats, ", ")+".")
	flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.Bool("strict", false, "Exit with status 1 when resolution reports any diagnostic.")
	flagSet.StringP("config", "c", "", "Optional config file (yaml, json or toml) providing defaults for the options above.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err)
	}
	slog.Debug("Arguments parsed successfully.")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flagSet); err != nil {
		return nil, false, usageError("failed to bind flags: %s", err)
	}

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, false, usageError("failed to read config file %s: %s", cfgFile, err)
		}
		slog.Debug("Config file loaded.", "file", v.ConfigFileUsed())
	}

	paths := flagSet.Args()
	if len(paths) == 0 {
		paths = v.GetStringSlice("paths")
	}
	slog.Debug("Definition paths determined.", "paths", paths)

	if len(paths) == 0 {
		flagSet.Usage()
		return nil, false, usageError("at least one definition path is required")
	}

	config, err := app.NewConfig(app.Config{
		Paths:     paths,
		Format:    render.Format(v.GetString("format")),
		Strict:    v.GetBool("strict"),
		LogFormat: v.GetString("log-format"),
		LogLevel:  v.GetString("log-level"),
	})
	if err != nil {
		return nil, false, usageError("%s", err)
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
