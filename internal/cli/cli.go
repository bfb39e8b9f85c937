package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/specialistvlad/tuneit/internal/app"
)

// Version is printed by -version.
const Version = "0.0.1"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("tuneit", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
tuneit - validate a tuning input for NWChem or Gaussian.

Usage:
  tuneit [options] (-i <input.tune> | <input.tune>)

Arguments:
  input.tune
    A tuning input file for NWChem (input.tune-nw) or Gaussian
    (input.tune-g09), or a directory containing such files.

Options:
`)
		flagSet.PrintDefaults()
	}

	inputFlag := flagSet.String("input", "", "Path to the tuning input file or directory.")
	iFlag := flagSet.String("i", "", "Path to the tuning input file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	dumpFlag := flagSet.Bool("dump", false, "Print each validated input as JSON.")
	configFlag := flagSet.String("config", "", "Path to a TOML defaults file (also $"+app.ConfigEnvVar+").")
	versionFlag := flagSet.Bool("version", false, "Print the version and exit.")
	vFlag := flagSet.Bool("v", false, "Print the version and exit (shorthand).")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *versionFlag || *vFlag {
		fmt.Fprintf(output, "tuneit version %s\n", Version)
		return nil, true, nil
	}

	path := ""
	if *inputFlag != "" {
		path = *inputFlag
	} else if *iFlag != "" {
		path = *iFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Input path determined.", "path", path)

	if path == "" {
		slog.Debug("No input path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := app.Config{
		InputPath: path,
		LogFormat: strings.ToLower(*logFormatFlag),
		LogLevel:  strings.ToLower(*logLevelFlag),
		Dump:      *dumpFlag,
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = os.Getenv(app.ConfigEnvVar)
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		applyFileConfig(&cfg, fc, setFlags(flagSet))
		slog.Debug("Defaults file applied.", "path", configPath)
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFileConfig copies values from fc into cfg unless the matching flag
// was given explicitly.
func applyFileConfig(cfg *app.Config, fc *app.FileConfig, set map[string]bool) {
	if fc.LogLevel != "" && !set["log-level"] {
		cfg.LogLevel = strings.ToLower(fc.LogLevel)
	}
	if fc.LogFormat != "" && !set["log-format"] {
		cfg.LogFormat = strings.ToLower(fc.LogFormat)
	}
	if fc.Dump && !set["dump"] {
		cfg.Dump = true
	}
}
