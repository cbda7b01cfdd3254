package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Semihazah/skein/pkg/adapters/file"
	"github.com/Semihazah/skein/pkg/program"
)

func writeScript(t *testing.T, dir, locator string, prog *program.Program, csv string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, locator+file.ProgramSuffix))
	require.NoError(t, err)
	require.NoError(t, program.Encode(f, prog))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, locator+file.TableSuffix), []byte(csv), 0o644))
}

func TestValidateCleanScript(t *testing.T) {
	dir := t.TempDir()
	prog := &program.Program{Nodes: map[string]*program.Node{
		"Start": {
			Name: "Start",
			Instructions: []program.Instruction{
				{Op: program.OpRunLine, Operands: []program.Operand{program.StringOperand("line:hello")}},
				{Op: program.OpStop},
			},
		},
	}}
	writeScript(t, dir, "intro", prog, "id,text\nline:hello,Hello!\n")

	var out strings.Builder
	require.NoError(t, Validate(dir, "intro", &out))
	assert.Contains(t, out.String(), "ok")
}

func TestValidateMissingLineFails(t *testing.T) {
	dir := t.TempDir()
	prog := &program.Program{Nodes: map[string]*program.Node{
		"Start": {
			Name: "Start",
			Instructions: []program.Instruction{
				{Op: program.OpRunLine, Operands: []program.Operand{program.StringOperand("line:absent")}},
			},
		},
	}}
	writeScript(t, dir, "intro", prog, "id,text\nline:hello,Hello!\n")

	var out strings.Builder
	err := Validate(dir, "intro", &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "line:absent")
}

func TestValidateMissingAssets(t *testing.T) {
	var out strings.Builder
	require.Error(t, Validate(t.TempDir(), "ghost", &out))
}
