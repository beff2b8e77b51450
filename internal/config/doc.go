// Package config loads the bot's settings.
//
// Values are layered, later sources winning: built-in defaults, an optional
// YAML file, a .env file, the process environment, and finally command-line
// flags applied by the cli package. A .env file never overrides a variable
// already set in the environment.
package config
