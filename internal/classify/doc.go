// Package classify orchestrates the per-file decision pipeline: has this
// path been processed before, is this content new, and where does the
// file go.
//
// For each discovered file the engine consults the checkpoint store,
// computes a content fingerprint, resolves it against the hash registry,
// and either moves the file into the primary date tree (unique) or the
// duplicates archive (duplicate). Side effects are strictly ordered:
// hash, then checkpoint-mark, then registry update, then filesystem move.
//
// The ordering is the crash-recovery contract: a path is checkpointed
// immediately after hashing, before any move or delete. A crash in that
// window leaves the source file in its original location but marked done,
// so a resume will not retry placing it. That trade-off is deliberate —
// re-hashing a large collection on slow network storage is the exact cost
// this tool exists to avoid — and clearing the checkpoint file forces a
// full reprocess when needed.
//
// Per-file failures are local: they produce a counted outcome and the
// batch continues. Processing is single-threaded and strictly sequential;
// registry and checkpoint updates live in memory for the whole run and
// are flushed to disk once, at the end of a non-simulated run.
package classify
