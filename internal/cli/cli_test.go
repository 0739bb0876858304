package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sanixdarker/gqlpath/internal/console"
	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var blogSchema = filepath.Join("..", "..", "pkg", "introspection", "testdata", "blog.json")

// execute runs the command tree with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GQLPATH_CONFIG", "")
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := run()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "bodies.ndjson")

	stdout, err := execute(t, "generate", "-s", blogSchema, "-t", "User", "-o", out, "-C", "-Q", "--db", filepath.Join(dir, "db.sqlite"))
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, stdout)
	}

	for _, want := range []string{
		`ways to reach the "User" node:`,
		"[1] PATH: Query (user) -> User",
		"operationName: op_User_1",
		"Saved Burp-ready output to: " + out,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	bodies, err := console.ReadBodies(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(bodies) == 0 || strings.Contains(bodies[0].Query, "\n") {
		t.Errorf("unexpected bodies %+v", bodies)
	}
	if _, err := os.Stat(filepath.Join(dir, "db.sqlite")); !os.IsNotExist(err) {
		t.Error("generate without --save should not create the database")
	}
}

func TestGenerate_ConsoleModes(t *testing.T) {
	stdout, err := execute(t, "generate", "-s", blogSchema, "-t", "Comment", "-m", "burp", "-C", "-Z", "===")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "===\n[1] PATH: ") || !strings.Contains(stdout, "BURP BODY (copy the next line):\n{\"query\":") {
		t.Errorf("unexpected burp output:\n%s", stdout)
	}
	if strings.Contains(stdout, "operationName: ") {
		t.Error("burp mode should not print the pretty body")
	}
}

func TestGenerate_NoConsoleAndLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "console.log")

	stdout, err := execute(t, "generate", "-s", blogSchema, "-t", "User", "-n", "-L", logPath)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" {
		t.Errorf("expected no console output, got:\n%s", stdout)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Error("console log should not be written with --no-console")
	}

	stdout, err = execute(t, "generate", "-s", blogSchema, "-t", "User", "-C", "-L", logPath)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != stdout || strings.Contains(string(data), "\x1b[") {
		t.Error("console log should mirror stdout without escapes")
	}
}

func TestGenerate_PathsOnly(t *testing.T) {
	stdout, err := execute(t, "generate", "-s", blogSchema, "-t", "User", "-p", "-C", "-D", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "[1] Query (user) -> User") || strings.Contains(stdout, "PATH:") {
		t.Errorf("unexpected paths-only output:\n%s", stdout)
	}
}

func TestGenerate_NoPaths(t *testing.T) {
	for _, tt := range []struct {
		format string
		want   string
	}{
		{"ndjson", ""},
		{"json-array", "[]"},
	} {
		t.Run(tt.format, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out")
			stdout, err := execute(t, "generate", "-s", blogSchema, "-t", "PostInput", "-o", out, "-f", tt.format, "-C")
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(stdout, `[WARN] No paths found from root "Query" to target "PostInput".`) {
				t.Errorf("missing warning:\n%s", stdout)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("output = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		code     int
		contains string
	}{
		{"unknown target", []string{"-s", blogSchema, "-t", "Usr"}, 2, `[ERROR] Target type "Usr" does not exist in the provided schema. Did you mean: User?`},
		{"unknown root", []string{"-s", blogSchema, "-t", "User", "-r", "Qery"}, 2, `[ERROR] Root type "Qery" does not exist`},
		{"missing schema", []string{"-s", "nope.json", "-t", "User"}, 2, "schema file not found"},
		{"bad arg mode", []string{"-s", blogSchema, "-t", "User", "-a", "both"}, 1, "[ERROR]"},
		{"bad format", []string{"-s", blogSchema, "-t", "User", "-f", "xml"}, 1, "invalid output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"generate"}, tt.args...)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := exitCode(err); got != tt.code {
				t.Errorf("exit code = %d, want %d", got, tt.code)
			}
			if line := errorLine(err); !strings.Contains(line, tt.contains) {
				t.Errorf("error line %q does not contain %q", line, tt.contains)
			}
		})
	}
}

func TestGenerate_RawSaveCheck(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	reqDir := filepath.Join(dir, "requests")

	_, err := execute(t, "generate", "-s", blogSchema, "-t", "Comment", "-n", "--raw-requests", reqDir, "--save", "--check", "--db", db)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	files, err := os.ReadDir(reqDir)
	if err != nil || len(files) == 0 {
		t.Fatalf("no raw requests written: %v", err)
	}
	if !strings.HasPrefix(files[0].Name(), "001_op_Comment_1") {
		t.Errorf("unexpected file %s", files[0].Name())
	}

	list, err := execute(t, "runs", "list", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(list), "\n")
	if len(lines) < 3 || !strings.HasPrefix(lines[0], "ID") {
		t.Fatalf("unexpected run list:\n%s", list)
	}
	id := strings.Fields(lines[1])[0]

	show, err := execute(t, "runs", "show", id, "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(show, `"target": "Comment"`) || !strings.Contains(show, `"operationName": "op_Comment_1"`) {
		t.Errorf("unexpected run:\n%s", show)
	}

	exported, err := execute(t, "runs", "export", id, "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	bodies, err := console.ReadBodies([]byte(exported))
	if err != nil || len(bodies) != len(files) {
		t.Errorf("export gave %d bodies (%v), want %d", len(bodies), err, len(files))
	}

	if _, err := execute(t, "runs", "delete", id, "--db", db); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "runs", "show", id, "--db", db); err == nil {
		t.Error("deleted run should not be found")
	}
}

func TestPaths(t *testing.T) {
	stdout, err := execute(t, "paths", "-s", blogSchema, "-t", "User", "--json", "-M", "2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, `"parentType": "Query"`) || strings.Count(stdout, `"childType": "User"`) < 2 {
		t.Errorf("unexpected JSON paths:\n%s", stdout)
	}

	stdout, err = execute(t, "paths", "-s", blogSchema, "-t", "PostInput")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "[WARN] No paths found") {
		t.Errorf("expected warning:\n%s", stdout)
	}
}

func TestSDLAndCheck(t *testing.T) {
	dir := t.TempDir()

	stdout, err := execute(t, "sdl", blogSchema)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "type User implements Node") {
		t.Errorf("unexpected SDL:\n%s", stdout)
	}

	good := filepath.Join(dir, "good.json")
	if _, err := execute(t, "generate", "-s", blogSchema, "-t", "Post", "-n", "-o", good, "-f", "json-array", "-a", "inline"); err != nil {
		t.Fatal(err)
	}
	stdout, err = execute(t, "check", "-s", blogSchema, good)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "queries valid") {
		t.Errorf("unexpected check output %q", stdout)
	}

	bad := filepath.Join(dir, "bad.ndjson")
	if err := os.WriteFile(bad, []byte(`{"query":"query x { nope }","operationName":"x","variables":{}}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stdout, err = execute(t, "check", "-s", blogSchema, bad)
	if err == nil || exitCode(err) != 1 {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if !strings.Contains(stdout, "[1] x:") {
		t.Errorf("failure not reported:\n%s", stdout)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gqlpath.yaml")
	yaml := "generation:\n  arg_mode: inline\noutput:\n  pretty: false\n  color: false\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.ndjson")

	if _, err := execute(t, "--config", cfgPath, "generate", "-s", blogSchema, "-t", "User", "-n", "-o", out, "-M", "1"); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(out)
	bodies, err := console.ReadBodies(data)
	if err != nil || len(bodies) != 1 {
		t.Fatalf("bodies = %v, %v", bodies, err)
	}
	q := bodies[0].Query
	if strings.Contains(q, "\n") || strings.Contains(q, "$") || !strings.Contains(q, `user(id: "REPLACE_ME")`) {
		t.Errorf("expected a one-line inline query, got %s", q)
	}

	// A flag overrides the file.
	if _, err := execute(t, "--config", cfgPath, "generate", "-s", blogSchema, "-t", "User", "-n", "-o", out, "-M", "1", "-a", "vars"); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(out)
	if !strings.Contains(string(data), "$Query_user_id") {
		t.Errorf("--arg-mode should override the config file:\n%s", data)
	}
}

func TestVersion(t *testing.T) {
	stdout, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "gqlpath version dev") {
		t.Errorf("unexpected version output %q", stdout)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&introspection.SchemaLoadError{Reason: "invalid JSON"}, 2},
		{&querygen.UnknownTypeError{Role: "target", Name: "X"}, 2},
		{errors.New("boom"), 1},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRun_ClosesArchiveOnError(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	if _, err := execute(t, "runs", "show", "missing", "--db", db); err == nil {
		t.Fatal("expected error for unknown run")
	}

	svc, err := application.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListRuns(1, 10); err == nil || !strings.Contains(err.Error(), "closed") {
		t.Errorf("archive should be closed after a failed command, got %v", err)
	}
}
