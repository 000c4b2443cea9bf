// Package registry persists the mapping from content fingerprint to the
// first location that content was ever seen at.
//
// The registry is the single source of truth for "is this content new":
// a fingerprint present in the registry marks every later file with the
// same content as a duplicate, across runs. Entries are created once and
// never mutated. The backing store is a JSON object keyed by fingerprint,
// loaded fully into memory at the start of a run and flushed once at the
// end via an atomic temp-file replace.
//
// A missing or corrupt backing file yields an empty registry rather than
// a failed run; the registry is always derivable by re-hashing, so forward
// progress wins over strict recovery.
package registry
