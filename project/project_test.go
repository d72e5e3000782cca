package project

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minj-lang/minj/interp"
	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramsInTestdata(t *testing.T) {
	err := filepath.WalkDir("testdata/programs", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, SourceExt) {
			return nil
		}
		name := filepath.Base(path)
		t.Run(name, goldenTest(path))
		return nil
	})
	require.NoError(t, err)
}

func goldenTest(path string) func(t *testing.T) {
	return func(t *testing.T) {
		stem := strings.TrimSuffix(path, SourceExt)
		want, err := os.ReadFile(stem + ".out")
		require.NoError(t, err)
		in, err := os.ReadFile(stem + ".in")
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			require.NoError(t, err)
		}

		p, err := Load(path)
		require.NoError(t, err)
		var out bytes.Buffer
		exec, err := p.BuildExecutor(&out, bytes.NewReader(in))
		require.NoError(t, err)
		_, err = exec.Run()
		require.NoError(t, err)
		assert.Equal(t, string(want), out.String())
	}
}

func TestLoadTOML(t *testing.T) {
	p, err := LoadFromFile("testdata/hello.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "hello.mj"), p.Program.File)
	assert.Equal(t, "main", p.Program.Entrypoint)
	assert.True(t, p.Trace.Details)

	var out bytes.Buffer
	exec, err := p.BuildExecutor(&out, nil)
	require.NoError(t, err)
	v, err := exec.Run()
	require.NoError(t, err)
	assert.Equal(t, value.IntValue(42), v)
	assert.Equal(t, "hello from main\n", out.String())
}

func TestLoadYAML(t *testing.T) {
	p, err := Load("testdata/hello.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "programs", "loops.mj"), p.Program.File)
	assert.Empty(t, p.Program.Entrypoint)
	assert.False(t, p.Trace.Details)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("testdata/unknown.json")
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load("testdata/missing.toml")
	require.ErrorIs(t, err, fs.ErrNotExist)

	p, err := Load("testdata/missing.mj")
	require.NoError(t, err)
	_, err = p.BuildExecutor(&bytes.Buffer{}, nil)
	var se *SourceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, filepath.Join("testdata", "missing.mj"), se.Path)
}

func writeProgram(t *testing.T, src string) *Project {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.mj")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	p, err := Load(path)
	require.NoError(t, err)
	return p
}

func TestRunErrors(t *testing.T) {
	p := writeProgram(t, "var x = 1\nprint(y)\n")
	exec, err := p.BuildExecutor(&bytes.Buffer{}, nil)
	require.NoError(t, err)
	_, err = exec.Run()
	require.ErrorIs(t, err, value.ErrUndefinedVariable)
	var re *interp.RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 2, re.Pos.Line)
	assert.Contains(t, FormatError(err), "undefined variable: y")

	p = writeProgram(t, "var = 1\n")
	_, err = p.BuildExecutor(&bytes.Buffer{}, nil)
	var pe *syntax.Error
	require.ErrorAs(t, err, &pe)
	var se *SourceError
	assert.False(t, errors.As(err, &se))
	assert.Contains(t, FormatError(err), "syntax error")

	p = writeProgram(t, "var x = 1\n")
	p.Program.Entrypoint = "main"
	exec, err = p.BuildExecutor(&bytes.Buffer{}, nil)
	require.NoError(t, err)
	_, err = exec.Run()
	require.ErrorIs(t, err, value.ErrUnknownCallable)
}

func TestTracer(t *testing.T) {
	p := writeProgram(t, `
class Box {
    var v = 1
}
var x = 1
var box = new Box()
x = 2
x = 1
box.v = 3
print(x)
`)
	var progress bytes.Buffer
	var out bytes.Buffer
	exec, err := p.BuildExecutor(&out, nil)
	require.NoError(t, err)
	tr := NewTracer(&ColorReporter{Writer: &progress}, true)
	tr.Attach(exec)
	_, err = exec.Run()
	require.NoError(t, err)
	assert.Equal(t, "1\n", out.String())

	require.Len(t, tr.Steps, 7)
	kinds := make([]string, len(tr.Steps))
	for i, s := range tr.Steps {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []string{"class", "declare", "declare", "assign", "assign", "assign", "print"}, kinds)

	// x = 1 returns to the state after `var box = new Box()`.
	assert.False(t, tr.Steps[3].Seen)
	assert.True(t, tr.Steps[4].Seen)
	assert.Equal(t, tr.Steps[2].Hash, tr.Steps[4].Hash)
	assert.True(t, tr.Steps[6].Seen)
	assert.Empty(t, tr.Steps[6].Changes)

	require.Len(t, tr.Steps[5].Changes, 1)
	assert.True(t, strings.HasSuffix(tr.Steps[5].Changes[0].Path, ".v"))

	assert.Contains(t, progress.String(), "x: var dynamic int = 1 -> var dynamic int = 2")
	assert.Contains(t, FormatSummary(tr.Steps), "7 steps, 5 distinct states")
}
