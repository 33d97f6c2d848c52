package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/sirupsen/logrus"

	htmltoc "github.com/alnah/go-htmltoc"
	"github.com/alnah/go-htmltoc/internal/config"
	"github.com/alnah/go-htmltoc/internal/hints"
)

// runGenerate converts a source directory into per-asset units and the page
// registry. A wrong number of positional arguments prints usage and
// succeeds, like the legacy tool.
func runGenerate(args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return flagError(err)
	}

	cfg, err := loadEffectiveConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	source, dest, ok := resolvePaths(positional, cfg)
	if !ok {
		printGenerateUsage(env.Stdout)
		return nil
	}

	files, err := discoverAssets(source)
	if err != nil {
		return fmt.Errorf("discovering assets: %w%s", err, hints.ForSourceDirectory(source))
	}

	log := newLogger(env.Stderr, flags.common, env.Color)
	if len(files) == 0 {
		log.WithField("source", source).Warn("no .html, .css or .png files found; writing an empty registry")
	}

	conv, err := newConverter(cfg, log)
	if err != nil {
		return err
	}

	report, err := conv.Run(files, dest)
	if err != nil {
		if errors.Is(err, htmltoc.ErrCreateDestination) {
			return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
		}
		return err
	}

	printReport(report, flags.common, cfg.Registry.Capacity, env)

	if flags.strict && report.Failed() > 0 {
		return fmt.Errorf("%w: %d of %d", ErrAssetsFailed, report.Failed(), len(report.Results))
	}
	return nil
}

// loadEffectiveConfig loads the named config (flag first, then
// HTMLTOC_CONFIG, else defaults) and applies the environment over it.
func loadEffectiveConfig(name string, env *envConfig) (*config.Config, error) {
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.registry.capacitySet {
		cfg.Registry.Capacity = flags.registry.capacity
	}
	if flags.registry.templatePath != "" {
		cfg.Templates.Path = flags.registry.templatePath
	}
	if flags.registry.excludeFailed {
		cfg.Registry.ExcludeFailed = true
	}
	if flags.encoding.newline != "" {
		cfg.Encoding.Newline = flags.encoding.newline
	}
	if flags.encoding.legacyEncoding {
		cfg.Encoding.LegacyNarrowing = true
	}
	if flags.checkLinks {
		cfg.Check.Links = true
	}
}

// resolvePaths picks the source and destination directories. The source
// comes from the first argument or input.defaultDir; the destination from
// the second argument, output.defaultDir, or the source itself.
func resolvePaths(args []string, cfg *config.Config) (source, dest string, ok bool) {
	switch len(args) {
	case 0:
		source = cfg.Input.DefaultDir
	case 1, 2:
		source = args[0]
	default:
		return "", "", false
	}
	if source == "" {
		return "", "", false
	}

	switch {
	case len(args) == 2:
		dest = args[1]
	case cfg.Output.DefaultDir != "":
		dest = cfg.Output.DefaultDir
	default:
		dest = source
	}
	return source, dest, true
}

// newConverter builds a Converter from the effective configuration.
func newConverter(cfg *config.Config, log logrus.FieldLogger) (*htmltoc.Converter, error) {
	nl, err := htmltoc.ParseNewline(cfg.Encoding.Newline)
	if err != nil {
		return nil, err
	}

	conv, err := htmltoc.NewConverter(
		htmltoc.WithLogger(log),
		htmltoc.WithCapacity(cfg.Registry.Capacity),
		htmltoc.WithNewline(nl),
		htmltoc.WithHostedMacro(cfg.Target.HostedMacro),
		htmltoc.WithTargetHeader(cfg.Target.Header),
		htmltoc.WithLegacyNarrowing(cfg.Encoding.LegacyNarrowing),
		htmltoc.WithExcludeFailed(cfg.Registry.ExcludeFailed),
		htmltoc.WithTemplatePath(cfg.Templates.Path),
		htmltoc.WithLinkCheck(cfg.Check.Links),
	)
	if err != nil {
		if errors.Is(err, htmltoc.ErrInvalidTemplatePath) {
			return nil, fmt.Errorf("%w%s", err, hints.ForTemplatePath(cfg.Templates.Path))
		}
		return nil, err
	}
	return conv, nil
}

// newLogger returns the diagnostics logger: text without timestamps on w,
// Debug with verbose, Error with quiet, Info otherwise.
func newLogger(w io.Writer, flags commonFlags, colors bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !colors,
	})

	switch {
	case flags.quiet:
		log.SetLevel(logrus.ErrorLevel)
	case flags.verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// printReport outputs the generated files and a summary to env.Stdout.
// Failures were already logged by the converter.
func printReport(report *htmltoc.Report, flags commonFlags, capacity int, env *Environment) {
	if flags.quiet {
		return
	}

	invalidNames := false
	for _, r := range report.Results {
		if r.Err != nil {
			continue
		}
		if htmltoc.ValidateSymbol(r.Asset.Symbol) != nil {
			invalidNames = true
		}
		if flags.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d bytes)\n", r.Asset.Path, r.Output, r.Size)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Output)
		}
	}
	fmt.Fprintf(env.Stdout, "Created %s\n", report.Declarations)
	fmt.Fprintf(env.Stdout, "Created %s\n", report.Definitions)

	if len(report.Results) > 1 {
		summary := fmt.Sprintf("%d succeeded, %d failed", report.Succeeded(), report.Failed())
		if env.Color {
			if report.Failed() > 0 {
				summary = color.Red.Sprint(summary)
			} else {
				summary = color.Green.Sprint(summary)
			}
		}
		fmt.Fprintf(env.Stdout, "\n%s\n", summary)
	}

	if len(report.Overflow) > 0 {
		fmt.Fprintf(env.Stderr, "warning: %d page(s) exceed the registry capacity of %d%s\n",
			len(report.Overflow), capacity, hints.ForRegistryOverflow(len(report.Registered), capacity))
	}
	if len(report.BrokenLinks) > 0 {
		fmt.Fprintf(env.Stderr, "warning: %d reference(s) to pages the registry does not serve%s\n",
			len(report.BrokenLinks), hints.ForBrokenLinks(report.BrokenLinks[0].Target))
	}
	if invalidNames {
		fmt.Fprintf(env.Stderr, "warning: some asset names do not form valid C identifiers%s\n",
			hints.ForInvalidIdentifier())
	}
}
