package registry_test

import (
	"testing"

	"github.com/Semihazah/skein/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type world struct {
	gold int
	log  []string
}

func TestDispatch(t *testing.T) {
	reg := registry.New[*world]()

	var gotArgs []string
	reg.Register("give", func(w *world, args []string) {
		gotArgs = args
		w.gold += 10
	})

	w := &world{}
	handled := reg.Dispatch("give gold 10", w)

	assert.True(t, handled)
	assert.Equal(t, []string{"gold", "10"}, gotArgs)
	assert.Equal(t, 10, w.gold)
}

func TestDispatch_UnknownIsNoOp(t *testing.T) {
	reg := registry.New[*world]()
	reg.Register("give", func(w *world, args []string) {
		w.gold++
	})

	w := &world{}
	handled := reg.Dispatch("unknown 1", w)

	assert.False(t, handled)
	assert.Equal(t, 0, w.gold)
}

func TestDispatch_NoArgs(t *testing.T) {
	reg := registry.New[*world]()
	reg.Register("wave", func(w *world, args []string) {
		w.log = append(w.log, "waved")
		assert.Empty(t, args)
	})

	w := &world{}
	require.True(t, reg.Dispatch("wave", w))
	assert.Equal(t, []string{"waved"}, w.log)
}

func TestSplit_NoQuoting(t *testing.T) {
	name, args := registry.Split(`say "hello there"`)
	assert.Equal(t, "say", name)
	// Quoting is deliberately unsupported; quotes pass through as tokens.
	assert.Equal(t, []string{`"hello`, `there"`}, args)
}

func TestRegister_Overwrites(t *testing.T) {
	reg := registry.New[*world]()
	reg.Register("give", func(w *world, _ []string) { w.gold = 1 })
	reg.Register("give", func(w *world, _ []string) { w.gold = 2 })

	w := &world{}
	reg.Dispatch("give", w)
	assert.Equal(t, 2, w.gold)
	assert.Equal(t, []string{"give"}, reg.Names())
}
