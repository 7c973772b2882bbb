package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so state does not leak
// between invocations of the shared rootCmd.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// withHome points HOME at a temp dir and writes the named files into it.
func withHome(t *testing.T, files map[string]string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for name, body := range files {
		p := filepath.Join(home, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return home
}

const metrics = "k,v,score\na,1,3\na,1,3\nb,,4.5\n"

func TestCleanWritesCSV(t *testing.T) {
	home := withHome(t, map[string]string{"metrics.csv": metrics})
	out := filepath.Join(home, "out", "clean.csv")
	msg := mustRun(t, "clean", filepath.Join(home, "metrics.csv"), "-o", out)
	if !strings.Contains(msg, "✓ Wrote 2 rows x 3 columns") {
		t.Fatalf("unexpected message: %q", msg)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "k,v,score\na,1,3\nb,Missing,4.5\n"
	if string(b) != want {
		t.Fatalf("cleaned csv = %q, want %q", b, want)
	}

	stdout := mustRun(t, "clean", filepath.Join(home, "metrics.csv"))
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestCleanRejectsBadInput(t *testing.T) {
	home := withHome(t, map[string]string{
		"photo.csv": "\x89PNG\r\n\x1a\n\x00\x00",
		"notes.pdf": "%PDF",
	})
	for _, name := range []string{"photo.csv", "notes.pdf"} {
		_, err := runCmd(t, "clean", filepath.Join(home, name))
		if err == nil || !strings.HasPrefix(err.Error(), "An error occurred while processing the file:") {
			t.Fatalf("%s: err = %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	home := withHome(t, map[string]string{"metrics.csv": metrics})
	path := filepath.Join(home, "metrics.csv")

	out := mustRun(t, "validate", path, "--require", "k,score")
	if !strings.Contains(out, "✓ All required columns are present!") {
		t.Fatalf("unexpected output: %q", out)
	}
	out = mustRun(t, "validate", path, "-r", "z,k", "-r", "y")
	if !strings.Contains(out, "⚠ Missing required columns: z, y") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := runCmd(t, "validate", path, "-r", "z", "--strict"); err == nil {
		t.Fatalf("--strict should fail when columns are missing")
	}
}

func TestDescribe(t *testing.T) {
	home := withHome(t, map[string]string{"metrics.csv": metrics})
	out := mustRun(t, "describe", filepath.Join(home, "metrics.csv"))
	if !strings.Contains(out, "column") || !strings.Contains(out, "score") || !strings.Contains(out, "3.75") {
		t.Fatalf("unexpected describe output:\n%s", out)
	}
	if strings.Contains(out, "\nv ") {
		t.Fatalf("object column v should not be described:\n%s", out)
	}
}

func TestPlot(t *testing.T) {
	home := withHome(t, map[string]string{"metrics.csv": metrics})
	img := filepath.Join(home, "scatter.png")
	mustRun(t, "plot", filepath.Join(home, "metrics.csv"), "--x", "k", "--y", "score", "-o", img)
	b, err := os.ReadFile(img)
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}

	if _, err := runCmd(t, "plot", filepath.Join(home, "metrics.csv"), "--x", "k"); err == nil {
		t.Fatalf("missing --y should fail")
	}
	_, err = runCmd(t, "plot", filepath.Join(home, "metrics.csv"), "--x", "k", "--y", "nope", "-o", img)
	if err == nil || !strings.Contains(err.Error(), "unknown column") {
		t.Fatalf("err = %v, want unknown column", err)
	}
}

func TestInspectJSONAndMarkdown(t *testing.T) {
	home := withHome(t, map[string]string{"metrics.csv": metrics})
	path := filepath.Join(home, "metrics.csv")

	out := mustRun(t, "inspect", path, "--json", "-r", "k,owner")
	var rep struct {
		RawRows int      `json:"raw_rows"`
		Rows    int      `json:"rows"`
		Missing []string `json:"missing"`
		Stats   []struct {
			Column string `json:"column"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if rep.RawRows != 3 || rep.Rows != 2 || len(rep.Missing) != 1 || rep.Missing[0] != "owner" {
		t.Fatalf("unexpected report: %+v", rep)
	}

	md := filepath.Join(home, "report.md")
	mustRun(t, "inspect", path, "-o", md, "--sample-rows", "0")
	b, err := os.ReadFile(md)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(b), "[DATASET SUMMARY]") || strings.Contains(string(b), "[HEAD AND SAMPLE ROWS]") {
		t.Fatalf("unexpected markdown:\n%s", b)
	}
}

func TestBatchAvoidsOverwrite(t *testing.T) {
	home := withHome(t, map[string]string{
		"d1/metrics.csv": metrics,
		"d2/metrics.csv": "x\n1\n",
		"d3/broken.csv":  "a\n\xff\n",
	})
	outDir := filepath.Join(home, "out")
	_, err := runCmd(t, "batch", filepath.Join(home, "d*", "*.csv"), "--out-dir", outDir, "-q")
	if err == nil || !strings.Contains(err.Error(), "1 of 3 files failed") {
		t.Fatalf("err = %v, want one failure", err)
	}
	for _, name := range []string{"metrics.cleaned.csv", "metrics__2.cleaned.csv", "metrics.summary.md", "metrics__2.summary.md"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "broken.cleaned.csv")); err == nil {
		t.Fatalf("failed file should not produce output")
	}
	if _, err := runCmd(t, "batch", filepath.Join(home, "nothing*.csv")); err == nil {
		t.Fatalf("expected error when nothing matches")
	}
}

func TestConfigSetAndShow(t *testing.T) {
	home := withHome(t, nil)
	mustRun(t, "config", "set", "preview_rows", "3")
	mustRun(t, "config", "set", "delimiter", ";")
	if _, err := os.Stat(filepath.Join(home, ".tablesift", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := mustRun(t, "config", "show")
	if !strings.Contains(out, "preview_rows: 3") || !strings.Contains(out, `delimiter: ";"`) {
		t.Fatalf("unexpected config show:\n%s", out)
	}
	if _, err := runCmd(t, "config", "set", "delimiter", "#"); err == nil {
		t.Fatalf("invalid delimiter should be rejected")
	}
	if _, err := runCmd(t, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("unknown key should be rejected")
	}
}

func TestDelimiterFlagOverridesConfig(t *testing.T) {
	home := withHome(t, map[string]string{"semi.csv": "a;b\n1;2\n"})
	out := mustRun(t, "clean", filepath.Join(home, "semi.csv"), "--delimiter", ";")
	if out != "a,b\n1,2\n" {
		t.Fatalf("stdout = %q", out)
	}
}
