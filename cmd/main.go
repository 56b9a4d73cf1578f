//  ____  _   _    _ ____
// |  _ \| | | |  | / ___|
// | |_) | |_| |_ | \___ \
// |  __/ \__, | |_| |___) |
// |_|    |___/ \___/|____/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"pyjs/compiler"
)

const defaultConfigFile = "pyjs.yml"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the whole command line program; it returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pyjs", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var source, configPath string
	var repl bool
	flags := defaultConfig()
	fs.StringVar(&source, "source", "", "Python source file or directory")
	fs.StringVar(&flags.Output, "output", "", "Output file or directory (default: stdout for a file, alongside the sources for a directory)")
	fs.StringVar(&configPath, "config", "", "Config file (default: "+defaultConfigFile+" if present)")
	fs.StringVar(&flags.Runtime, "runtime", flags.Runtime, "Name of the runtime namespace object")
	fs.BoolVar(&flags.AllowOmission, "allow-omission", false, "Drop unsupported constructs instead of failing")
	fs.IntVar(&flags.Jobs, "jobs", flags.Jobs, "Number of files translated in parallel")
	fs.BoolVar(&compiler.DebugMode, "debug", false, "Enable debug output")
	fs.BoolVar(&repl, "repl", false, "Translate statements interactively")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := resolveConfig(fs, configPath, flags)
	if err != nil {
		printError(stdout, err)
		return 1
	}
	compiler.DebugLogPrintf("config: %+v", cfg)

	if repl {
		return runREPL(cfg)
	}
	if source == "" {
		fmt.Fprintln(stdout, "Please provide a source file or directory")
		return 2
	}

	jobs, err := collectJobs(source, cfg.Output, cfg.Exclude)
	if err != nil {
		printError(stdout, err)
		return 1
	}
	if len(jobs) == 0 {
		fmt.Fprintf(stdout, "No Python files found in %s\n", source)
		return 0
	}

	start := time.Now()
	if err := translateAll(context.Background(), jobs, cfg, stdout); err != nil {
		printError(stdout, err)
		return 1
	}
	if jobs[0].dst != "" {
		fmt.Fprintf(stdout, "\033[32m\033[1mTranslated %d file(s)\033[0m in %v\n", len(jobs), time.Since(start).Round(time.Millisecond))
	}
	return 0
}

// resolveConfig merges defaults, the config file and the flags set on the
// command line, in that order.
func resolveConfig(fs *flag.FlagSet, configPath string, flags Config) (Config, error) {
	cfg := defaultConfig()
	if configPath == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			configPath = defaultConfigFile
		}
	}
	if configPath != "" {
		var err error
		if cfg, err = loadConfig(configPath, cfg); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = flags.Output
		case "runtime":
			cfg.Runtime = flags.Runtime
		case "allow-omission":
			cfg.AllowOmission = flags.AllowOmission
		case "jobs":
			cfg.Jobs = flags.Jobs
		}
	})
	if err := cfg.validate("flags"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "\033[31m\033[1mError:\033[0m %v\n", err)
	if errors.Is(err, compiler.ErrUnsupported) {
		fmt.Fprintf(w, "  \033[32mTo skip unsupported constructs:\033[0m run with -allow-omission\n")
	}
}
