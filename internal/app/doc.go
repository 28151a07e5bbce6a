// Package app contains the core application logic: it loads graph files,
// links them into one program graph, optionally collects garbage, answers
// path queries and writes the requested outputs. It is decoupled from any
// specific entrypoint like a CLI.
package app
