// Package preflight verifies directory access before a sort run mutates
// anything. Checks cover the input tree, the output root, and the state
// and log directories; a run refuses to start while any check fails.
package preflight
