package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxgrid/pkg/errors"
	pkgio "github.com/matzehuels/boxgrid/pkg/io"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

const layoutJSON = `{"rects": [[1, 1, 2, 3], [1, 4, 2, 8], [3, 4, 6, 9], [3, 1, 6, 2]]}`

var layoutLines = []string{
	"1##2#### ",
	"######## ",
	"4# 3#####",
	"## #    #",
	"## #    #",
	"## ######",
}

type testCLI struct {
	*CLI
	out, errOut bytes.Buffer
	dir         string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tc := &testCLI{CLI: New(io.Discard, LogInfo), dir: t.TempDir()}
	tc.SetOutput(&tc.out, &tc.errOut)
	return tc
}

func (tc *testCLI) run(args ...string) error {
	tc.out.Reset()
	tc.errOut.Reset()
	root := tc.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func (tc *testCLI) write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(tc.dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"encode", "decode", "verify", "discretize", "view", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestEncodeToStdout(t *testing.T) {
	tc := newTestCLI(t)
	in := tc.write(t, "layout.json", layoutJSON)

	if err := tc.run("encode", in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := strings.Join(layoutLines, "\n") + "\n"
	if got := tc.out.String(); got != want {
		t.Errorf("encode output:\n%q\nwant:\n%q", got, want)
	}

	if err := tc.run("encode", "--labels=false", in); err != nil {
		t.Fatalf("encode --labels=false: %v", err)
	}
	if strings.ContainsAny(tc.out.String(), "0123456789") {
		t.Errorf("unlabeled output contains digits:\n%s", tc.out.String())
	}
}

func TestEncodeDecodeFiles(t *testing.T) {
	tc := newTestCLI(t)
	in := tc.write(t, "layout.toml", "rects = [[1, 1, 2, 3], [1, 4, 2, 8], [3, 4, 6, 9], [3, 1, 6, 2]]\n")
	gridPath := filepath.Join(tc.dir, "layout.txt")

	if err := tc.run("encode", in, "-o", gridPath); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(tc.out.String(), "Encoded 4 rectangles") {
		t.Errorf("encode status = %q", tc.out.String())
	}
	data, err := os.ReadFile(gridPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimRight(string(data), "\n"); got != strings.Join(layoutLines, "\n") {
		t.Errorf("grid file:\n%s", data)
	}

	outPath := filepath.Join(tc.dir, "decoded.yaml")
	if err := tc.run("decode", gridPath, "-o", outPath); err != nil {
		t.Fatalf("decode: %v", err)
	}
	set, err := pkgio.ImportRects(outPath)
	if err != nil {
		t.Fatal(err)
	}
	want := rect.MustNew([4]int{1, 1, 2, 3}, [4]int{1, 4, 2, 8}, [4]int{3, 4, 6, 9}, [4]int{3, 1, 6, 2})
	if !set.Equal(want) {
		t.Errorf("decoded %v, want %v", set, want)
	}
}

func TestDecodeToStdout(t *testing.T) {
	tc := newTestCLI(t)
	gridPath := tc.write(t, "box.txt", "1##\n# #\n###\n")

	if err := tc.run("decode", gridPath, "--format", "json"); err != nil {
		t.Fatalf("decode: %v", err)
	}
	set, err := pkgio.ReadRects(&tc.out, pkgio.FormatJSON)
	if err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	if !set.Equal(rect.MustNew([4]int{1, 1, 3, 3})) {
		t.Errorf("decoded %v", set)
	}
}

func TestDecodeMismatchShowsDiff(t *testing.T) {
	tc := newTestCLI(t)
	gridPath := tc.write(t, "bad.txt", "12##\n####\n")

	err := tc.run("decode", gridPath)
	if !errors.Is(err, errors.ErrCodeReconstructionMismatch) {
		t.Fatalf("got %v, want RECONSTRUCTION_MISMATCH", err)
	}
	if !strings.Contains(tc.errOut.String(), "Reconstruction does not match") {
		t.Errorf("diagnostics = %q", tc.errOut.String())
	}
	if tc.out.Len() != 0 {
		t.Errorf("failed decode wrote output: %q", tc.out.String())
	}
}

func TestDecodeRejectsBadFormat(t *testing.T) {
	tc := newTestCLI(t)
	gridPath := tc.write(t, "box.txt", "1##\n# #\n###\n")

	err := tc.run("decode", gridPath, "--format", "xml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
}

func TestVerifyCommand(t *testing.T) {
	tc := newTestCLI(t)
	in := tc.write(t, "layout.json", layoutJSON)

	if err := tc.run("verify", in); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(tc.out.String(), "Round trip verified") {
		t.Errorf("verify output = %q", tc.out.String())
	}

	overlap := tc.write(t, "overlap.json", `{"rects": [[1, 1, 4, 4], [2, 2, 5, 5]]}`)
	if err := tc.run("verify", overlap); err == nil {
		t.Error("verify of overlapping frames should fail")
	}
}

func TestDiscretizeCommand(t *testing.T) {
	tc := newTestCLI(t)
	in := tc.write(t, "floats.yaml", "rects:\n  - [0, 0, 0.4, 1]\n  - [0.6, 0, 1, 1]\n")

	if err := tc.run("discretize", in, "--units", "10"); err != nil {
		t.Fatalf("discretize: %v", err)
	}
	set, err := pkgio.ReadRects(&tc.out, pkgio.FormatJSON)
	if err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	want := rect.MustNew([4]int{1, 1, 5, 10}, [4]int{6, 1, 10, 10})
	if !set.Equal(want) {
		t.Errorf("discretized %v, want %v", set, want)
	}

	if err := tc.run("discretize", in); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing --units: got %v, want INVALID_INPUT", err)
	}
}

func TestConfigFileDefaults(t *testing.T) {
	tc := newTestCLI(t)
	cfg := tc.write(t, "config.toml", "labels = false\n[cache]\nbackend = \"none\"\n")
	in := tc.write(t, "box.json", `{"rects": [[1, 1, 3, 3]]}`)

	if err := tc.run("--config", cfg, "encode", in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := tc.out.String(); got != "###\n# #\n###\n" {
		t.Errorf("config labels=false: got %q", got)
	}

	if err := tc.run("--config", cfg, "encode", "--labels", in); err != nil {
		t.Fatalf("encode --labels: %v", err)
	}
	if got := tc.out.String(); got != "1##\n# #\n###\n" {
		t.Errorf("--labels should override config: got %q", got)
	}
}

func TestConfigFileRejected(t *testing.T) {
	tc := newTestCLI(t)
	cfg := tc.write(t, "config.toml", "lables = false\n")
	in := tc.write(t, "box.json", `{"rects": [[1, 1, 3, 3]]}`)

	err := tc.run("--config", cfg, "encode", in)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("completion", "bash"); err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(tc.out.String(), "boxgrid") {
		t.Error("bash completion should mention the program name")
	}
}

func TestFileArgsCompletion(t *testing.T) {
	complete := fileArgs(rectExts...)

	exts, directive := complete(nil, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("directive = %v, want FilterFileExt", directive)
	}
	if strings.Join(exts, ",") != "json,toml,yaml,yml" {
		t.Errorf("extensions = %v", exts)
	}

	if _, directive := complete(nil, []string{"layout.json"}, ""); directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument directive = %v, want NoFileComp", directive)
	}
}
