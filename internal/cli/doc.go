// Package cli implements the nanokvm command tree.
//
// The root command carries connection and logging flags; subcommands
// cover serial port discovery, controller queries, keyboard and mouse
// input, configuration, and MJPEG capture. Settings resolve with flag
// over environment (NANOKVM_*) over config file over default, through
// internal/config.
package cli
