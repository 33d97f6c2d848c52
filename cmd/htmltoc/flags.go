package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// registryFlags holds flags shaping webpages.h and webpages.c.
type registryFlags struct {
	capacity      int
	capacitySet   bool // --capacity given, even as 0
	templatePath  string
	excludeFailed bool
}

// encodingFlags holds flags shaping every generated file.
type encodingFlags struct {
	newline        string
	legacyEncoding bool
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common     commonFlags
	registry   registryFlags
	encoding   encodingFlags
	strict     bool
	checkLinks bool
}

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	encoding encodingFlags
	color    string
	style    string
}

// configFlags holds all flags for the config command.
type configFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-asset details")
}

// addRegistryFlags adds registry flags to a FlagSet.
func addRegistryFlags(fs *flag.FlagSet, f *registryFlags) {
	fs.IntVar(&f.capacity, "capacity", 0, "page table size WWW_MAX_PAGES (default: 16)")
	fs.StringVar(&f.templatePath, "template-path", "", "directory with declarations.tmpl/definitions.tmpl")
	fs.BoolVar(&f.excludeFailed, "exclude-failed", false, "leave failed assets out of webpages.h/webpages.c")
}

// addEncodingFlags adds encoding flags to a FlagSet.
func addEncodingFlags(fs *flag.FlagSet, f *encodingFlags) {
	fs.StringVar(&f.newline, "newline", "", "line terminator of generated files: lf, crlf")
	fs.BoolVar(&f.legacyEncoding, "legacy-encoding", false, "narrow text assets to 7-bit ASCII via cp1252")
}

// newGenerateFlagSet registers the generate flags into f.
// Shared by parseGenerateFlags and shell completion.
func newGenerateFlagSet(f *generateFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addRegistryFlags(fs, &f.registry)
	addEncodingFlags(fs, &f.encoding)
	fs.BoolVar(&f.strict, "strict", false, "exit non-zero when any asset fails")
	fs.BoolVar(&f.checkLinks, "check-links", false, "warn about page references the registry cannot serve")
	return fs
}

// newPreviewFlagSet registers the preview flags into f.
func newPreviewFlagSet(f *previewFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	addEncodingFlags(fs, &f.encoding)
	fs.StringVar(&f.color, "color", colorAuto, "highlight output: auto, always, never")
	fs.StringVar(&f.style, "style", "", "highlight style name (default: monokai)")
	return fs
}

// newConfigFlagSet registers the config flags into f.
func newConfigFlagSet(f *configFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	return fs
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	f := &generateFlags{}
	fs := newGenerateFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printGenerateUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.registry.capacitySet = fs.Changed("capacity")
	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, stderr io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := newPreviewFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printPreviewUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags and returns positional args.
func parseConfigFlags(args []string, stderr io.Writer) (*configFlags, []string, error) {
	f := &configFlags{}
	fs := newConfigFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConfigUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
