// Package config loads the runtime configuration of the FaceVault CLI.
//
// Sources are applied in order of precedence: built-in defaults, then an
// optional JSON file (-c/-config), then command-line flags. Path fields
// left empty after all sources are resolved relative to DataDir.
package config
