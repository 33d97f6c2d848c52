package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-htmltoc/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for the CLI.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrNoInput      = errors.New("no source directory")
	ErrNotDirectory = errors.New("source is not a directory")
	ErrAssetsFailed = errors.New("asset(s) failed")
)

// commands lists the first arguments handled as subcommands. Anything else,
// or an existing directory with a command's name, is the source directory
// of an implicit generate.
var commands = map[string]bool{
	"generate":   true,
	"preview":    true,
	"config":     true,
	"completion": true,
	"version":    true,
	"help":       true,
}

func main() {
	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// isCommand reports whether arg names a subcommand. Matching is case-sensitive.
func isCommand(arg string) bool {
	return commands[arg]
}

// runMain dispatches args (without the program name) and returns the exit code.
func runMain(args []string, env *Environment) int {
	warnUnknownEnvVars(env.Stderr)

	cmd := "generate"
	if len(args) > 0 && isCommand(args[0]) && !fileutil.DirExists(args[0]) {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "generate":
		err = runGenerate(args, env)
	case "preview":
		err = runPreview(args, env)
	case "config":
		err = runConfig(args, env)
	case "completion":
		err = runCompletion(args, env)
	case "version":
		fmt.Fprintf(env.Stdout, "htmltoc %s\n", Version)
	case "help":
		err = runHelp(args, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
	}
	return exitCodeFor(err)
}

// flagError wraps a pflag parse error so it maps to ExitUsage. The help
// request passes through unchanged.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
