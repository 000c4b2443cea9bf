// Package checkpoint persists the set of absolute file paths already
// processed in any prior run, regardless of outcome.
//
// A checkpointed path is never re-hashed or re-moved on a later run, which
// makes re-running the pipeline over an unchanged input a cheap no-op and
// lets a crashed run resume where it stopped. Entries are never removed
// automatically; deleting the checkpoint file is the operator's way to
// force a full reprocess.
//
// Paths are checkpointed the moment their hash outcome is decided, before
// any move is attempted. A crash between those steps leaves the file in
// its original location but marked done; this trade-off is deliberate and
// documented in the classify package.
package checkpoint
