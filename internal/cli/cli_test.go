package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	serrors "github.com/sketchify/sketchify/pkg/errors"
	"github.com/sketchify/sketchify/pkg/params"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	for _, name := range []string{"render", "styles", "chain", "serve", "cache", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestRenderCommandFlags(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	cmd, _, err := root.Find([]string{"render"})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		"output", "out-dir", "profile", "format", "quality", "resolution", "aspect",
		"compare", "remote", "fallback-local", "no-cache", "refresh", "accel", "pick", "jobs",
		flagStyle, flagMedium, flagBrush, flagIntensity, flagSeed, flagRandom, flagZoom,
	} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("render lacks --%s", name)
		}
	}
}

func TestRenderRejectsOutputWithManyInputs(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.config = &Config{}
	err := c.runRender(context.Background(), []string{"a.jpg", "b.jpg"}, renderOpts{output: "x.png"}, nil)
	if !serrors.Is(err, serrors.ErrCodeInvalidInput) {
		t.Errorf("runRender() error = %v, want INVALID_INPUT", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out.String(), appName) {
		t.Error("bash completion does not mention the command name")
	}
}

func TestFlagCompletions(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"render", "--medium", ""}, []string{"pencil", "pastel"}},
		{[]string{"render", "--style", "cross"}, []string{"crosshatching", "crosscontour"}},
		{[]string{"chain", "--texture", ""}, []string{"paper", "weave"}},
		{[]string{"chain", "--format", ""}, []string{"svg", "dot"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, tt.args...))
			if err := root.Execute(); err != nil {
				t.Fatalf("complete %v: %v", tt.args, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("completions %q lack %q", out.String(), want)
				}
			}
		})
	}
}

func TestCompletionUnknownShell(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("completion tcsh: want error")
	}
}

func TestFilterStyles(t *testing.T) {
	all, err := filterStyles("")
	if err != nil || len(all) != len(params.Styles) {
		t.Errorf("filterStyles(\"\") = %d styles, %v", len(all), err)
	}

	marks, err := filterStyles("Marks")
	if err != nil {
		t.Fatalf("filterStyles(Marks) error: %v", err)
	}
	for _, s := range marks {
		if s.Family != params.FamilyMarks {
			t.Errorf("filterStyles(Marks) returned %s from %s", s.ID, s.Family)
		}
	}

	if _, err := filterStyles("cubism"); !serrors.Is(err, serrors.ErrCodeInvalidInput) {
		t.Errorf("filterStyles(cubism) error = %v, want INVALID_INPUT", err)
	}
}

func TestStylesTable(t *testing.T) {
	out := stylesTable(params.StylesIn(params.FamilyTonal))
	for _, s := range params.StylesIn(params.FamilyTonal) {
		if !strings.Contains(out, string(s.ID)) {
			t.Errorf("table lacks %s", s.ID)
		}
	}
	if strings.Contains(out, string(params.StyleHatching)) {
		t.Error("table lists a style from another family")
	}
}

func TestRenderChain(t *testing.T) {
	dot := "digraph chain { a -> b; }"

	got, err := renderChain(context.Background(), dot, chainFormatDOT)
	if err != nil || string(got) != dot {
		t.Errorf("renderChain(dot) = %q, %v", got, err)
	}

	if _, err := renderChain(context.Background(), dot, "pdf"); !serrors.Is(err, serrors.ErrCodeInvalidFormat) {
		t.Errorf("renderChain(pdf) error = %v, want INVALID_FORMAT", err)
	}
}

func TestDisplayURL(t *testing.T) {
	tests := map[string]string{
		":5001":          "http://localhost:5001",
		"0.0.0.0:8080":   "http://0.0.0.0:8080",
		"render.local:1": "http://render.local:1",
	}
	for addr, want := range tests {
		if got := displayURL(addr); got != want {
			t.Errorf("displayURL(%q) = %q, want %q", addr, got, want)
		}
	}
}
