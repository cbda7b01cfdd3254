// Package ports defines the interfaces between the skein runtime core and
// its collaborators: the opaque bytecode interpreter, the asynchronous asset
// infrastructure, variable storage and host function libraries. Adapters
// implement these; the core depends only on them.
package ports
