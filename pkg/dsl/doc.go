// Package dsl provides a fluent builder for assembling compiled scripts and
// their string tables in code, without a compiler. It is aimed at tests,
// examples and embedded scenarios where authoring a full script pipeline is
// overkill.
package dsl
