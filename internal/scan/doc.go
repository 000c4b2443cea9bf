// Package scan discovers the media files a run will consider.
//
// Discovery either walks the input root recursively or reads an explicit
// newline-separated file list. Only regular files with a supported media
// extension are returned, and directories whose name matches an excluded
// part (the duplicates archive, quarantine folders) are pruned so a run
// never re-ingests its own output.
package scan
