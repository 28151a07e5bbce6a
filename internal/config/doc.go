// Package config defines the engine configuration and the interface through
// which graph sources are loaded.
//
// The configuration lives in an optional TOML file:
//
//	[engine]
//	parent_label = "parent"
//	max_parent_hops = 1024
//
//	[collector]
//	enabled = true
//
//	[log]
//	level = "info"
//	format = "text"
//
// Missing keys keep their defaults. Command-line flags are applied on top
// by the cli package.
package config
