// Package config loads and validates service configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML file
// (selected through CONFIG_PATH) and environment variables, with an optional
// .env file loaded first. Every settings struct validates itself.
package config
