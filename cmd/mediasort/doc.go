// Package main hosts the mediasort CLI entrypoint and command graph.
//
// The Cobra-based command tree wires configuration resolution, structured
// logging setup, and the sort pipeline together so subcommands can focus
// on user experience instead of wiring.
//
// The state files under paths.state_dir assume a single writer: run one
// mediasort process at a time against a given state directory. Concurrent
// runs are not detected and will race on the final state flush.
package main
