package main

// Notes:
// - Generated scripts are checked for the commands and flags they must
//   offer, not byte for byte; running them needs the target shell.

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestFlagDefs - Flag metadata
// ---------------------------------------------------------------------------

func TestFlagDefs(t *testing.T) {
	t.Parallel()

	flags := flagDefs(newGenerateFlagSet(&generateFlags{}))
	byName := make(map[string]flagDef, len(flags))
	for _, fd := range flags {
		byName[fd.Long] = fd
	}

	tests := []struct {
		long      string
		wantShort string
		wantType  flagType
	}{
		{long: "config", wantShort: "c", wantType: flagFile},
		{long: "quiet", wantShort: "q", wantType: flagBool},
		{long: "verbose", wantShort: "v", wantType: flagBool},
		{long: "capacity", wantType: flagInt},
		{long: "newline", wantType: flagEnum},
		{long: "template-path", wantType: flagDir},
		{long: "exclude-failed", wantType: flagBool},
		{long: "legacy-encoding", wantType: flagBool},
		{long: "strict", wantType: flagBool},
		{long: "check-links", wantType: flagBool},
	}

	for _, tt := range tests {
		t.Run(tt.long, func(t *testing.T) {
			t.Parallel()

			fd, ok := byName[tt.long]
			if !ok {
				t.Fatalf("flag --%s not extracted", tt.long)
			}
			if fd.Short != tt.wantShort {
				t.Errorf("Short = %q, want %q", fd.Short, tt.wantShort)
			}
			if fd.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", fd.Type, tt.wantType)
			}
			if fd.Desc == "" {
				t.Error("Desc should come from the flag usage")
			}
		})
	}

	if diff := cmp.Diff([]string{"lf", "crlf"}, byName["newline"].Values); diff != "" {
		t.Errorf("newline values mismatch (-want +got):\n%s", diff)
	}
}

func TestGlobExtensions(t *testing.T) {
	t.Parallel()

	got := globExtensions("*.html, *.css,*.png")
	if diff := cmp.Diff([]string{"html", "css", "png"}, got); diff != "" {
		t.Errorf("globExtensions() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestGenerateCompletion - Script content per shell
// ---------------------------------------------------------------------------

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell Shell
		want  []string
	}{
		{
			shell: ShellBash,
			want: []string{
				"complete -F _htmltoc htmltoc",
				"--capacity",
				"--template-path",
				`compgen -W "lf crlf"`,
				"!*.@(yaml|yml)",
				"!*.@(html|css|png)",
				`compgen -W "bash zsh fish"`,
			},
		},
		{
			shell: ShellZsh,
			want: []string{
				"#compdef htmltoc",
				"_htmltoc_generate()",
				"_htmltoc_preview()",
				"'(-c --config)'{-c,--config}",
				":newline:(lf crlf)",
				"'--template-path[",
				"'1:shell:(bash zsh fish)'",
				"compdef _htmltoc htmltoc",
			},
		},
		{
			shell: ShellFish,
			want: []string{
				"complete -c htmltoc -f",
				"-a generate -d 'Convert web assets to C sources'",
				"-s c -l config -r -F",
				"-l newline -x -a 'lf crlf'",
				"-l color -x -a 'auto always never'",
				"not __fish_seen_subcommand_from preview config completion version help",
				"__fish_complete_suffix .png",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion() error = %v", err)
			}
			script := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(script, want) {
					t.Errorf("%s script should contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_AllCommands(t *testing.T) {
	t.Parallel()

	for _, shell := range supportedShells {
		var buf bytes.Buffer
		if err := GenerateCompletion(&buf, shell); err != nil {
			t.Fatalf("GenerateCompletion(%s) error = %v", shell, err)
		}
		for name := range commands {
			if !strings.Contains(buf.String(), name) {
				t.Errorf("%s script should mention command %q", shell, name)
			}
		}
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "powershell")
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("error = %v, want ErrUnsupportedShell", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an unsupported shell")
	}
}

func TestZshEscape(t *testing.T) {
	t.Parallel()

	got := zshEscape("a [b]: 'c'")
	want := `a \[b\]\: '\''c'\''`
	if got != want {
		t.Errorf("zshEscape() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestRunCompletion - Command entry point
// ---------------------------------------------------------------------------

func TestRunCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
	}{
		{name: "no shell prints usage", args: []string{"completion"}, wantCode: ExitSuccess, wantStdout: "Shells:"},
		{name: "bash", args: []string{"completion", "bash"}, wantCode: ExitSuccess, wantStdout: "_htmltoc()"},
		{name: "unknown shell", args: []string{"completion", "tcsh"}, wantCode: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := newTestEnv()
			if code := runMain(tt.args, env); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout should contain %q, got:\n%s", tt.wantStdout, stdout)
			}
		})
	}
}
