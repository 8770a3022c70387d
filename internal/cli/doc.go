// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. Flags are
// declared with pflag and layered over DIMGRID_* environment variables and an
// optional config file through viper.
package cli
