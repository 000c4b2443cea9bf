// Package contentid computes content fingerprints for media files.
//
// A fingerprint is the SHA-256 digest of the file's full byte content,
// rendered as lowercase hex. Two files share a fingerprint exactly when
// they are byte-identical (up to hash collisions), which makes the
// fingerprint the dedup key for the whole pipeline.
package contentid
