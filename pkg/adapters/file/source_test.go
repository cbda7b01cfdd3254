package file_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Semihazah/skein/internal/logging"
	"github.com/Semihazah/skein/pkg/adapters/file"
	"github.com/Semihazah/skein/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const progJSON = `{
	"name": "intro",
	"nodes": {
		"Start": {
			"instructions": [
				{"op": "RunLine", "operands": [{"string": "line:hello"}]},
				{"op": "Stop"}
			]
		}
	}
}`

const tableCSV = "id,text\nline:hello,Hello!\n"

func writeAssets(t *testing.T, dir, locator string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, locator+file.ProgramSuffix), []byte(progJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, locator+file.TableSuffix), []byte(tableCSV), 0o644))
}

// waitLoaded polls until the handle settles, mirroring how the admission
// gate consumes handles.
func waitLoaded(t *testing.T, states ...func() ports.AssetState) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for _, state := range states {
		for state() == ports.AssetUnloaded || state() == ports.AssetLoading {
			if time.Now().After(deadline) {
				t.Fatal("asset did not settle in time")
			}
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func TestSource_Resolve(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, "intro")

	src := file.NewSource(dir, file.WithLogger(logging.NewNop()))
	prog, table := src.Resolve("intro")

	waitLoaded(t, prog.State, table.State)

	require.Equal(t, ports.AssetLoaded, prog.State())
	require.Equal(t, ports.AssetLoaded, table.State())
	assert.Equal(t, "intro", prog.Program().Name)

	text, ok := table.Table().Lookup("line:hello")
	require.True(t, ok)
	assert.Equal(t, "Hello!", text)

	// Same handles on repeat resolution.
	prog2, table2 := src.Resolve("intro")
	assert.Same(t, prog, prog2)
	assert.Same(t, table, table2)
}

func TestSource_MissingAssetsFail(t *testing.T) {
	src := file.NewSource(t.TempDir(), file.WithLogger(logging.NewNop()))
	prog, table := src.Resolve("ghost")

	waitLoaded(t, prog.State, table.State)

	assert.Equal(t, ports.AssetFailed, prog.State())
	assert.Equal(t, ports.AssetFailed, table.State())
	assert.Error(t, prog.Err())
	assert.Error(t, table.Err())
}

func TestSource_CorruptProgramFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad"+file.ProgramSuffix), []byte("{nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad"+file.TableSuffix), []byte(tableCSV), 0o644))

	src := file.NewSource(dir, file.WithLogger(logging.NewNop()))
	prog, table := src.Resolve("bad")

	waitLoaded(t, prog.State, table.State)

	assert.Equal(t, ports.AssetFailed, prog.State())
	assert.Equal(t, ports.AssetLoaded, table.State())
}

func TestSource_Invalidate(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, "intro")

	src := file.NewSource(dir, file.WithLogger(logging.NewNop()))
	prog, _ := src.Resolve("intro")

	src.Invalidate("intro")
	prog2, _ := src.Resolve("intro")
	assert.NotSame(t, prog, prog2)
}

func TestSource_Watch(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, "intro")

	src := file.NewSource(dir, file.WithLogger(logging.NewNop()))
	done := make(chan struct{})
	defer close(done)

	changes, err := src.Watch(done)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro"+file.TableSuffix), []byte(tableCSV+"line:bye,Bye\n"), 0o644))

	select {
	case locator := <-changes:
		assert.Equal(t, "intro", locator)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event received")
	}
}
