package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell names a completion script dialect.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell reports a shell without a completion script.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType selects what a flag value completes to.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagEnum // fixed set of values
	flagFile // files matching FileGlob
	flagDir  // directory
)

// flagDef is one flag as the scripts see it.
type flagDef struct {
	Long     string   // --capacity
	Short    string   // -c (empty if none)
	Type     flagType
	Desc     string
	Values   []string // flagEnum only
	FileGlob string   // for file flags, comma separated
}

// argKind describes what a command's positional arguments complete to.
type argKind int

const (
	argNone argKind = iota
	argDirs
	argFiles
	argShells
	argCommands
)

// commandDef is one subcommand as the scripts see it.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        argKind
	FilePattern string // glob for file arguments, comma separated
}

// valueHint adds what a FlagSet cannot express about a flag's value.
type valueHint struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// valueHints is keyed by long flag name.
var valueHints = map[string]valueHint{
	"newline": {Values: []string{"lf", "crlf"}},
	"color":   {Values: []string{colorAuto, colorAlways, colorNever}},

	"config": {FileGlob: "*.yaml,*.yml"},

	"template-path": {IsDir: true},
}

// supportedShells lists the completion targets, in help order.
var supportedShells = []Shell{ShellBash, ShellZsh, ShellFish}

// flagDefs lists the flags of fs in definition order, typed from their
// pflag value and refined by valueHints.
func flagDefs(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "uint":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if hint, ok := valueHints[f.Name]; ok {
			switch {
			case len(hint.Values) > 0:
				fd.Type = flagEnum
				fd.Values = hint.Values
			case hint.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = hint.FileGlob
			case hint.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// completionCommands lists the subcommands offered after "htmltoc".
// Flags are extracted from the actual FlagSets.
func completionCommands() []commandDef {
	return []commandDef{
		{
			Name:  "generate",
			Desc:  "Convert web assets to C sources",
			Flags: flagDefs(newGenerateFlagSet(&generateFlags{})),
			Args:  argDirs,
		},
		{
			Name:        "preview",
			Desc:        "Print the C unit generated for one asset",
			Flags:       flagDefs(newPreviewFlagSet(&previewFlags{})),
			Args:        argFiles,
			FilePattern: "*.html,*.css,*.png",
		},
		{
			Name:  "config",
			Desc:  "Print the effective configuration",
			Flags: flagDefs(newConfigFlagSet(&configFlags{})),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: argShells,
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: argCommands,
		},
	}
}

// commandNames returns the names of cmds in order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// shellNames returns the supported shells as strings.
func shellNames() []string {
	names := make([]string, len(supportedShells))
	for i, s := range supportedShells {
		names[i] = string(s)
	}
	return names
}

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if e := strings.TrimPrefix(strings.TrimSpace(g), "*."); e != "" {
			exts = append(exts, e)
		}
	}
	return exts
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(completionCommands())
	case ShellZsh:
		script = zshScript(completionCommands())
	case ShellFish:
		script = fishScript(completionCommands())
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(shellNames(), ", "))
	}
	_, err := io.WriteString(w, script)
	return err
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	names := strings.Join(commandNames(cmds), " ")

	b.WriteString("# bash completion for htmltoc\n")
	b.WriteString("_htmltoc() {\n")
	b.WriteString("    local cur prev cmd i\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&b, "    local commands=%q\n", names)
	b.WriteString("    cmd=generate\n")
	b.WriteString("    if [[ ${COMP_CWORD} -gt 1 ]]; then\n")
	b.WriteString("        case \"${COMP_WORDS[1]}\" in\n")
	fmt.Fprintf(&b, "            %s) cmd=\"${COMP_WORDS[1]}\" ;;\n", strings.Join(commandNames(cmds), "|"))
	b.WriteString("        esac\n")
	b.WriteString("    fi\n\n")

	// Flag values, keyed on the previous word.
	b.WriteString("    case \"${prev}\" in\n")
	for _, fd := range uniqueValueFlags(cmds) {
		fmt.Fprintf(&b, "        %s)\n", bashFlagPattern(fd))
		switch fd.Type {
		case flagEnum:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(fd.Values, " "))
		case flagFile:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\"))\n", strings.Join(globExtensions(fd.FileGlob), "|"))
		case flagDir:
			b.WriteString("            COMPREPLY=($(compgen -d -- \"${cur}\"))\n")
		default:
			b.WriteString("            COMPREPLY=()\n")
		}
		b.WriteString("            return ;;\n")
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		if len(c.Flags) > 0 {
			b.WriteString("            if [[ \"${cur}\" == -* ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", bashFlagWords(c.Flags))
			b.WriteString("                return\n")
			b.WriteString("            fi\n")
		}
		switch c.Args {
		case argDirs:
			b.WriteString("            COMPREPLY=($(compgen -d -- \"${cur}\"))\n")
			b.WriteString("            if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
			b.WriteString("                COMPREPLY+=($(compgen -W \"${commands}\" -- \"${cur}\"))\n")
			b.WriteString("            fi\n")
		case argFiles:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\"))\n", strings.Join(globExtensions(c.FilePattern), "|"))
			b.WriteString("            COMPREPLY+=($(compgen -d -- \"${cur}\"))\n")
		case argShells:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(shellNames(), " "))
		case argCommands:
			b.WriteString("            COMPREPLY=($(compgen -W \"${commands}\" -- \"${cur}\"))\n")
		default:
			b.WriteString("            COMPREPLY=()\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _htmltoc htmltoc\n")

	return b.String()
}

// uniqueValueFlags returns every flag taking a value, once, sorted by name.
func uniqueValueFlags(cmds []commandDef) []flagDef {
	seen := map[string]flagDef{}
	for _, c := range cmds {
		for _, fd := range c.Flags {
			if fd.Type != flagBool {
				seen[fd.Long] = fd
			}
		}
	}
	out := make([]flagDef, 0, len(seen))
	for _, fd := range seen {
		out = append(out, fd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Long < out[j].Long })
	return out
}

func bashFlagPattern(fd flagDef) string {
	if fd.Short != "" {
		return "--" + fd.Long + "|-" + fd.Short
	}
	return "--" + fd.Long
}

func bashFlagWords(flags []flagDef) string {
	words := make([]string, 0, len(flags)*2)
	for _, fd := range flags {
		words = append(words, "--"+fd.Long)
		if fd.Short != "" {
			words = append(words, "-"+fd.Short)
		}
	}
	return strings.Join(words, " ")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func zshScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef htmltoc\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "_htmltoc_%s() {\n", c.Name)
		b.WriteString("    _arguments -s")
		for _, fd := range c.Flags {
			b.WriteString(" \\\n        " + zshFlagSpec(fd))
		}
		switch c.Args {
		case argDirs:
			b.WriteString(" \\\n        '1:source directory:_files -/'")
			b.WriteString(" \\\n        '2:destination directory:_files -/'")
		case argFiles:
			fmt.Fprintf(&b, " \\\n        '1:asset:_files -g \"*.(%s)\"'", strings.Join(globExtensions(c.FilePattern), "|"))
		case argShells:
			fmt.Fprintf(&b, " \\\n        '1:shell:(%s)'", strings.Join(shellNames(), " "))
		case argCommands:
			fmt.Fprintf(&b, " \\\n        '1:command:(%s)'", strings.Join(commandNames(cmds), " "))
		}
		b.WriteString("\n}\n\n")
	}

	b.WriteString("_htmltoc() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )) && [[ \"${words[CURRENT]}\" != -* ]]; then\n")
	b.WriteString("        _describe -t commands 'htmltoc command' commands\n")
	b.WriteString("        _files -/\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            shift words\n")
		b.WriteString("            (( CURRENT-- ))\n")
		fmt.Fprintf(&b, "            _htmltoc_%s ;;\n", c.Name)
	}
	b.WriteString("        *)\n")
	b.WriteString("            _htmltoc_generate ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _htmltoc htmltoc\n")

	return b.String()
}

func zshFlagSpec(fd flagDef) string {
	desc := "[" + zshEscape(fd.Desc) + "]"

	var action string
	switch fd.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = ":" + fd.Long + ":(" + strings.Join(fd.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g \"*.(" + strings.Join(globExtensions(fd.FileGlob), "|") + ")\""
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + fd.Long + ":"
	}

	if fd.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", fd.Short, fd.Long, fd.Short, fd.Long, desc, action)
	}
	return fmt.Sprintf("'--%s%s%s'", fd.Long, desc, action)
}

// zshEscape escapes text placed inside a single-quoted _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer(
		`'`, `'\''`,
		`[`, `\[`,
		`]`, `\]`,
		`:`, `\:`,
	)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	names := commandNames(cmds)

	// Anything but an explicit non-generate command selects generate.
	var others []string
	for _, n := range names {
		if n != "generate" {
			others = append(others, n)
		}
	}

	b.WriteString("# fish completion for htmltoc\n")
	b.WriteString("complete -c htmltoc -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c htmltoc -n __fish_use_subcommand -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := "__fish_seen_subcommand_from " + c.Name
		if c.Name == "generate" {
			cond = "not __fish_seen_subcommand_from " + strings.Join(others, " ")
		}

		for _, fd := range c.Flags {
			b.WriteString(fishFlagLine(cond, fd))
		}

		switch c.Args {
		case argDirs:
			fmt.Fprintf(&b, "complete -c htmltoc -n '%s' -a '(__fish_complete_directories)'\n", cond)
		case argFiles:
			for _, ext := range globExtensions(c.FilePattern) {
				fmt.Fprintf(&b, "complete -c htmltoc -n '%s' -k -a '(__fish_complete_suffix .%s)'\n", cond, ext)
			}
		case argShells:
			fmt.Fprintf(&b, "complete -c htmltoc -n '%s' -a '%s'\n", cond, strings.Join(shellNames(), " "))
		case argCommands:
			fmt.Fprintf(&b, "complete -c htmltoc -n '%s' -a '%s'\n", cond, strings.Join(names, " "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func fishFlagLine(cond string, fd flagDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "complete -c htmltoc -n '%s'", cond)
	if fd.Short != "" {
		fmt.Fprintf(&b, " -s %s", fd.Short)
	}
	fmt.Fprintf(&b, " -l %s", fd.Long)

	switch fd.Type {
	case flagBool:
	case flagEnum:
		fmt.Fprintf(&b, " -x -a '%s'", strings.Join(fd.Values, " "))
	case flagFile:
		b.WriteString(" -r -F")
	case flagDir:
		b.WriteString(" -x -a '(__fish_complete_directories)'")
	default:
		b.WriteString(" -x")
	}

	fmt.Fprintf(&b, " -d '%s'\n", fishEscape(fd.Desc))
	return b.String()
}

// fishEscape escapes text placed inside single quotes.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// ---------------------------------------------------------------------------
// Command
// ---------------------------------------------------------------------------

// runCompletion prints the script named by the single argument.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmltoc completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print a completion script for the given shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shells:")
	fmt.Fprintln(w, "  bash")
	fmt.Fprintln(w, "  zsh")
	fmt.Fprintln(w, "  fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Setup:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # in ~/.bashrc")
	fmt.Fprintln(w, "    eval \"$(htmltoc completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "    eval \"$(htmltoc completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    htmltoc completion fish > ~/.config/fish/completions/htmltoc.fish")
}
