package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/urn/internal/config"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv(config.EnvPath, "")
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Command(t *testing.T) {
	code, out, errOut := runCLI(t, "", "-c", "COUNT DRAWS 3..7 FROM blue=12, red=16, green=11 WHERE red < 4 OR blue = 3;")
	require.Equal(t, 0, code, errOut)
	for _, want := range []string{"9139", "80431", "529529", "2693691", "11257389"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[")
}

func TestRun_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dice.urn")
	src := "PROBABILITY DRAWS 2 FROM d1=1, d2=1, d3=1, d4=1, d5=1, d6=1\n  WITH REPLACEMENT WHERE d6 >= 1 SHOW RATIONAL;\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	code, out, errOut := runCLI(t, "", "--file", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "11/36")

	code, _, errOut = runCLI(t, "", "-f", filepath.Join(t.TempDir(), "missing.urn"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "reading statements")
}

func TestRun_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urn.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  commas: true\n  color: always\n"), 0o644))

	code, out, errOut := runCLI(t, "", "--config", path, "-c", "COUNT DRAWS 5 FROM A=1000;")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "8,250,291,250,200")
	assert.Contains(t, out, "\x1b[1m")

	code, _, errOut = runCLI(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "nope.yaml")
}

func TestRun_FormatFlag(t *testing.T) {
	code, out, errOut := runCLI(t, "", "--format", "plot", "-c", "COUNT DRAWS 1..2 FROM A=3;")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "|")
}

func TestRun_Errors(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-c", "COUNT DRAWS FROM;")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: syntax error")

	code, _, errOut = runCLI(t, "", "-c", "COUNT DRAWS FROM A=1;", "-f", "x.urn")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "cannot be used together")

	code, _, errOut = runCLI(t, "", "--log-level", "loud", "-c", "COUNT DRAWS FROM A=1;")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "loud")

	code, _, _ = runCLI(t, "", "--no-such-flag")
	assert.Equal(t, 2, code)
}

func TestRun_Shell(t *testing.T) {
	code, out, errOut := runCLI(t, "COUNT DRAWS 2 FROM A=4;\nCOUNT DRAWS FROM Q;\nquit\n")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "        2      6\n")
	assert.Contains(t, out, "Error: ")
	assert.NotContains(t, out, "urn> ")
}

func TestRun_DebugLogging(t *testing.T) {
	code, _, errOut := runCLI(t, "", "--log-level", "debug", "-c", "COUNT DRAWS 2 FROM A=4, B=2 WHERE A = 1 OR B = 1;")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, errOut, "evaluating")
	assert.Contains(t, errOut, "subsets=3")
}
