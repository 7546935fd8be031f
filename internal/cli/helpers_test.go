package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/varigen/internal/state"
)

// fakePrompter answers prompts from scripted values. With nothing left
// to answer it behaves like a non-interactive terminal.
type fakePrompter struct {
	inputs   []string
	confirms []bool
	selects  []int
	asked    []string
}

func (p *fakePrompter) Input(message, def string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.inputs) == 0 {
		return "", ErrNotInteractive
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	return v, nil
}

func (p *fakePrompter) Confirm(message string, def bool) (bool, error) {
	p.asked = append(p.asked, message)
	if len(p.confirms) == 0 {
		return false, ErrNotInteractive
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

func (p *fakePrompter) Select(message string, options []string) (int, error) {
	p.asked = append(p.asked, message)
	if len(p.selects) == 0 {
		return 0, ErrNotInteractive
	}
	v := p.selects[0]
	p.selects = p.selects[1:]
	return v, nil
}

// testEnv is a temp directory with a config file pointing at its own
// database. Ids are shared across runs so they never repeat.
type testEnv struct {
	dir      string
	config   string
	ids      state.IDGenerator
	prompter *fakePrompter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	db := filepath.Join(dir, "data", "state.db")
	require.NoError(t, os.WriteFile(config, []byte("db: "+db+"\n"), 0644))
	return &testEnv{
		dir:      dir,
		config:   config,
		ids:      state.NewSequentialGenerator("id"),
		prompter: &fakePrompter{},
	}
}

// run executes the CLI and returns stdout, stderr and the error.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	opts := &RootOptions{
		Prompter: e.prompter,
		IDs:      e.ids,
		Getenv:   func(string) string { return "" },
	}
	cmd := newRootCommand(opts)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// mustRun executes the CLI and fails the test on error.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := e.run(t, args...)
	require.NoError(t, err, "stdout: %s\nstderr: %s", stdout, stderr)
	return stdout
}

// writeFile writes a file into the env directory and returns its path.
func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

// decodeData parses a JSON envelope and decodes its data into T.
func decodeData[T any](t *testing.T, out string) T {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env), "output: %s", out)
	require.Equal(t, "ok", env.Status, "output: %s", out)
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

// decodeError parses a JSON error envelope.
func decodeError(t *testing.T, out string) *CLIError {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env), "output: %s", out)
	require.Equal(t, "error", env.Status)
	require.NotNil(t, env.Error)
	return env.Error
}

// importCities imports a two-item list and returns its id.
func (e *testEnv) importCities(t *testing.T) string {
	t.Helper()
	path := e.writeFile(t, "cities.txt", "Kyiv;UA\nBerlin;DE\n")
	res := decodeData[ListImportResult](t, e.mustRun(t, "list", "import", path, "--format", "json"))
	require.Len(t, res.Imported, 1)
	return res.Imported[0].ID
}

// addField runs field add with args and returns the new field.
func (e *testEnv) addField(t *testing.T, args ...string) FieldView {
	t.Helper()
	out := e.mustRun(t, append([]string{"field", "add", "--format", "json"}, args...)...)
	return decodeData[FieldView](t, out)
}
