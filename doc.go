/*
Package skein orchestrates compiled interactive-dialogue scripts inside a
host application's per-tick update loop.

It drives an opaque bytecode interpreter one suspend point at a time,
translates low-level suspend reasons into a small externally visible state
set (idle, delivering a line, presenting choices), mediates a strict-FIFO
queue of pending sessions so concurrently requested dialogues start one at a
time, resolves localized line text with ordered placeholder substitution, and
dispatches named script commands into host-supplied callbacks.

# Model

The host owns the loop; skein owns the coordination. Every call to Tick does
a bounded amount of work: the admission gate promotes the head of the queue
once its script and string-table assets report loaded, then the runner
advances the interpreter by exactly one suspend point and applies one
transition. Nothing blocks: asset readiness is polled, never awaited.

# Usage

	package main

	import (
		"context"
		"log"
		"time"

		"github.com/Semihazah/skein"
		"github.com/Semihazah/skein/pkg/adapters/file"
	)

	type Game struct{ Gold int }

	func main() {
		game := &Game{}

		rt, err := skein.New(game,
			skein.WithAssetSource[*Game](file.NewSource("./dialogue")),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer rt.Close()

		rt.Commands().Register("give", func(g *Game, args []string) {
			g.Gold += 10
		})

		rt.Enqueue(skein.Request{Locator: "intro"})

		ctx := context.Background()
		for range time.Tick(16 * time.Millisecond) {
			if err := rt.Tick(ctx); err != nil {
				log.Printf("session aborted: %v", err)
			}
			// Render rt.Status(), feed choices via rt.SelectChoice.
		}
	}

Command callbacks receive the host state handle and may mutate it freely;
they run inside the tick that produced the command and must not re-enter
Tick. The runtime is single-threaded by design: all methods belong to the
tick thread.
*/
package skein
