package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmltoc [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate     Convert web assets to C sources (default)")
	fmt.Fprintln(w, "  preview      Print the C unit generated for one asset")
	fmt.Fprintln(w, "  config       Print the effective configuration")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'htmltoc help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmltoc [generate] <source_dir> [destination_dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert every .html, .css and .png file under source_dir into")
	fmt.Fprintln(w, "<name>.c units plus webpages.h and webpages.c.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source_dir         Directory scanned recursively (optional if config has input.defaultDir)")
	fmt.Fprintln(w, "  destination_dir    Output directory (default: output.defaultDir, else source_dir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Registry:")
	fmt.Fprintln(w, "      --capacity <n>         Page table size WWW_MAX_PAGES (default: 16)")
	fmt.Fprintln(w, "      --template-path <dir>  Directory with declarations.tmpl/definitions.tmpl")
	fmt.Fprintln(w, "      --exclude-failed       Leave failed assets out of webpages.h/webpages.c")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Encoding:")
	fmt.Fprintln(w, "      --newline <s>          Line terminator: lf, crlf")
	fmt.Fprintln(w, "      --legacy-encoding      Narrow text assets to 7-bit ASCII via cp1252")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show per-asset details")
	fmt.Fprintln(w, "      --strict               Exit non-zero when any asset fails")
	fmt.Fprintln(w, "      --check-links          Warn about page references the registry cannot serve")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTMLTOC_CONFIG, HTMLTOC_INPUT_DIR, HTMLTOC_OUTPUT_DIR, HTMLTOC_CAPACITY,")
	fmt.Fprintln(w, "  HTMLTOC_NEWLINE, HTMLTOC_LEGACY_ENCODING, HTMLTOC_TEMPLATE_PATH,")
	fmt.Fprintln(w, "  HTMLTOC_CHECK_LINKS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmltoc preview <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the C unit generated for one asset to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --color <s>            Highlight output: auto, always, never (default: auto)")
	fmt.Fprintln(w, "      --style <s>            Highlight style name (default: monokai)")
	fmt.Fprintln(w, "      --newline <s>          Line terminator: lf, crlf")
	fmt.Fprintln(w, "      --legacy-encoding      Narrow text to 7-bit ASCII via cp1252")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmltoc config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration (config file and environment) as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
}

// runHelp prints help for the given command, or the main usage.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: htmltoc version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: htmltoc help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
