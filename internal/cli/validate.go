package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Semihazah/skein/internal/validator"
	"github.com/Semihazah/skein/pkg/adapters/file"
	"github.com/Semihazah/skein/pkg/lines"
	"github.com/Semihazah/skein/pkg/program"
)

// Validate checks the integrity of a compiled script and its string table
// under dir, printing issues to out. It returns an error when any issue is a
// hard error so the command can exit non-zero.
func Validate(dir, locator string, out io.Writer) error {
	prog, err := readProgram(filepath.Join(dir, locator+file.ProgramSuffix))
	if err != nil {
		return err
	}
	table, err := readTable(filepath.Join(dir, locator+file.TableSuffix))
	if err != nil {
		return err
	}

	issues := validator.Check(prog, table)
	for _, issue := range issues {
		fmt.Fprintln(out, issue)
	}
	if validator.HasErrors(issues) {
		return fmt.Errorf("%q has errors", locator)
	}
	fmt.Fprintf(out, "%s: %d nodes, %d lines, ok\n", locator, len(prog.Nodes), table.Len())
	return nil
}

func readProgram(path string) (*program.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening program: %w", err)
	}
	defer f.Close()
	return program.Decode(f)
}

func readTable(path string) (*lines.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening string table: %w", err)
	}
	defer f.Close()
	return lines.ReadTable(f)
}
