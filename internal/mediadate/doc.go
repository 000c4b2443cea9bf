// Package mediadate resolves a best-effort capture date for media files.
//
// Image formats that carry EXIF metadata are asked for their embedded
// capture timestamp first; anything else, and any file whose metadata is
// missing or unreadable, falls back to the filesystem modification time.
// A missing capture date is never an error here; it only steers the file
// into the date-less bucket downstream.
package mediadate
