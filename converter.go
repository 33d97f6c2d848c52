package htmltoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-htmltoc/internal/pagelinks"
)

// Converter turns discovered asset files into C source units and the page
// registry. Create with NewConverter; a Converter holds no per-run state
// and may be reused.
type Converter struct {
	cfg     converterConfig
	log     logrus.FieldLogger
	loader  AssetLoader
	emitter *RegistryEmitter
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	registry        RegistrySettings
	legacyNarrowing bool
	excludeFailed   bool
	checkLinks      bool
	templatePath    string
}

// WithLogger sets the logger receiving per-asset diagnostics and registry
// warnings. The default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCapacity sets WWW_MAX_PAGES of the generated registry.
func WithCapacity(n int) Option {
	return func(c *Converter) {
		c.cfg.registry.Capacity = n
	}
}

// WithNewline sets the line terminator of every generated file.
func WithNewline(nl Newline) Option {
	return func(c *Converter) {
		c.cfg.registry.Newline = nl
	}
}

// WithHostedMacro sets the macro that selects the hosted includes in
// webpages.c.
func WithHostedMacro(name string) Option {
	return func(c *Converter) {
		c.cfg.registry.HostedMacro = name
	}
}

// WithTargetHeader sets the header webpages.c includes on the target.
func WithTargetHeader(header string) Option {
	return func(c *Converter) {
		c.cfg.registry.TargetHeader = header
	}
}

// WithLegacyNarrowing maps text assets through the legacy 8-bit code page
// and then to 7-bit ASCII before escaping.
func WithLegacyNarrowing(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.legacyNarrowing = enabled
	}
}

// WithExcludeFailed leaves assets whose unit could not be written out of
// webpages.h and webpages.c. By default they stay, so the registry lists
// every discovered file.
func WithExcludeFailed(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.excludeFailed = enabled
	}
}

// WithLinkCheck makes Run scan registered markup pages for local
// references to pages missing from the registry.
func WithLinkCheck(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.checkLinks = enabled
	}
}

// WithTemplatePath loads webpages.h and webpages.c templates from dir,
// falling back to the built-in ones for missing files.
func WithTemplatePath(dir string) Option {
	return func(c *Converter) {
		c.cfg.templatePath = dir
	}
}

// WithAssetLoader sets a custom template loader. It takes precedence over
// WithTemplatePath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.loader = loader
	}
}

// NewConverter creates a Converter with default configuration.
// Returns an error if the settings are invalid or the templates cannot be
// loaded or parsed.
func NewConverter(opts ...Option) (*Converter, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Converter{
		cfg: converterConfig{registry: DefaultRegistrySettings()},
		log: discard,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.registry.Validate(); err != nil {
		return nil, err
	}

	if c.loader == nil {
		loader, err := NewAssetLoader(c.cfg.templatePath)
		if err != nil {
			return nil, err
		}
		c.loader = loader
	}

	emitter, err := NewRegistryEmitter(c.loader)
	if err != nil {
		return nil, err
	}
	c.emitter = emitter

	return c, nil
}

// FileResult is the outcome of converting one asset.
type FileResult struct {
	Asset  Asset
	Output string // path of the generated unit
	Size   int    // array size in bytes, valid when Err is nil
	Err    error
}

// Report summarizes a Run.
type Report struct {
	Results      []FileResult
	Declarations string       // path of webpages.h
	Definitions  string       // path of webpages.c
	Registered   []Asset      // assets listed in the registry, in init order
	Overflow     []string     // names www_webpages_init cannot add at runtime
	Shadowed     []string     // names hidden by an earlier entry
	BrokenLinks  []BrokenLink // filled when WithLinkCheck is set
}

// BrokenLink is a local reference from a registered page to a name the
// registry does not hold.
type BrokenLink struct {
	Page   string // public name of the referring page
	Ref    string // attribute value as written
	Target string // public name the browser requests
}

// Failed returns the number of assets whose unit was not written.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Succeeded returns the number of assets whose unit was written.
func (r *Report) Succeeded() int {
	return len(r.Results) - r.Failed()
}

// ConvertFile encodes the asset at path and writes <dest>/<symbol>.c.
// The destination directory is created if missing.
func (c *Converter) ConvertFile(path, dest string) FileResult {
	a := NewAsset(path)
	res := FileResult{Asset: a, Output: filepath.Join(dest, a.UnitFileName())}

	if err := os.MkdirAll(dest, 0o750); err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrCreateDestination, err)
		return res
	}

	u, err := EncodeAsset(a, c.cfg.legacyNarrowing)
	if err != nil {
		res.Err = err
		return res
	}

	if err := writeUnitFile(res.Output, a, u, c.cfg.registry.Newline); err != nil {
		res.Err = err
		return res
	}

	res.Size = u.Size
	return res
}

func writeUnitFile(path string, a Asset, u *Unit, nl Newline) (err error) {
	f, err := os.Create(path) // #nosec G304 -- destination chosen by caller
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteUnit, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrWriteUnit, cerr)
		}
	}()

	return EmitUnit(f, a, u, nl)
}

// WriteRegistry writes webpages.h and webpages.c into dest, listing assets
// in the order given.
func (c *Converter) WriteRegistry(list []Asset, dest string) (declPath, defPath string, err error) {
	if err := os.MkdirAll(dest, 0o750); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrCreateDestination, err)
	}

	declPath = filepath.Join(dest, DeclarationsFile)
	defPath = filepath.Join(dest, DefinitionsFile)

	if err := c.writeRegistryFile(declPath, list, c.emitter.WriteDeclarations); err != nil {
		return "", "", err
	}
	if err := c.writeRegistryFile(defPath, list, c.emitter.WriteDefinitions); err != nil {
		return "", "", err
	}
	return declPath, defPath, nil
}

func (c *Converter) writeRegistryFile(path string, list []Asset, write func(io.Writer, []Asset, RegistrySettings) error) (err error) {
	f, err := os.Create(path) // #nosec G304 -- destination chosen by caller
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteRegistry, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrWriteRegistry, cerr)
		}
	}()

	return write(f, list, c.cfg.registry)
}

// Run converts every file into dest, then writes the registry. Per-asset
// failures are logged and recorded in the report; the run continues. The
// returned error is non-nil only when the destination or the registry
// files cannot be written.
func (c *Converter) Run(files []string, dest string) (*Report, error) {
	if err := os.MkdirAll(dest, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateDestination, err)
	}

	report := &Report{Results: make([]FileResult, 0, len(files))}
	for _, path := range files {
		res := c.ConvertFile(path, dest)
		report.Results = append(report.Results, res)

		entry := c.log.WithField("file", path)
		if res.Err != nil {
			entry.WithError(res.Err).Error("asset skipped")
			continue
		}
		if err := ValidateSymbol(res.Asset.Symbol); err != nil {
			entry.WithError(err).Warn("generated identifiers are not valid C")
		}
		entry.WithField("size", res.Size).Debugf("wrote %s", res.Output)
	}

	for _, res := range report.Results {
		if c.cfg.excludeFailed && res.Err != nil {
			continue
		}
		report.Registered = append(report.Registered, res.Asset)
	}

	report.Overflow, report.Shadowed = c.checkRegistry(report.Registered)
	if c.cfg.checkLinks {
		report.BrokenLinks = c.checkLinks(report.Registered)
	}

	declPath, defPath, err := c.WriteRegistry(report.Registered, dest)
	if err != nil {
		return report, err
	}
	report.Declarations = declPath
	report.Definitions = defPath

	return report, nil
}

// checkRegistry replays www_webpages_init against the registry model and
// reports the names the generated table will not serve.
func (c *Converter) checkRegistry(list []Asset) (overflow, shadowed []string) {
	reg, err := NewRegistry(c.cfg.registry.Capacity)
	if err != nil {
		// Capacity was validated in NewConverter.
		return nil, nil
	}

	for _, a := range list {
		if _, ok := reg.Get(a.Name); ok {
			shadowed = append(shadowed, a.Name)
			c.log.WithField("page", a.Name).Warn("page name registered twice; lookups return the first entry")
		}
		if err := reg.Add(a.Name, nil, 0); errors.Is(err, ErrRegistryFull) {
			overflow = append(overflow, a.Name)
		}
	}

	if len(overflow) > 0 {
		c.log.WithFields(logrus.Fields{
			"capacity": c.cfg.registry.Capacity,
			"pages":    len(list),
		}).Warnf("registry overflow; %d page(s) will not be added at runtime", len(overflow))
	}
	return overflow, shadowed
}

// checkLinks lists references from registered markup pages to names
// missing from list. Pages that cannot be read are logged and skipped.
func (c *Converter) checkLinks(list []Asset) []BrokenLink {
	served := make(map[string]bool, len(list))
	for _, a := range list {
		served[a.Name] = true
	}

	var broken []BrokenLink
	for _, a := range list {
		if a.Kind != KindMarkup {
			continue
		}
		refs, err := extractRefs(a)
		if err != nil {
			c.log.WithField("page", a.Name).WithError(err).Warn("links not checked")
			continue
		}
		for _, ref := range refs {
			if served[ref.Target] {
				continue
			}
			broken = append(broken, BrokenLink{Page: a.Name, Ref: ref.Value, Target: ref.Target})
			c.log.WithFields(logrus.Fields{
				"page":   a.Name,
				"ref":    ref.Value,
				"target": ref.Target,
			}).Warn("reference to a page the registry does not serve")
		}
	}
	return broken
}

func extractRefs(a Asset) ([]pagelinks.Ref, error) {
	f, err := os.Open(a.Path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pagelinks.Extract(a.Name, f)
}
