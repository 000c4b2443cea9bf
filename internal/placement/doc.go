// Package placement decides where a classified file lands in the output
// tree.
//
// Unique files go to <root>/YYYY/MM, duplicates to
// <root>/<duplicates>/YYYY/MM. Files without a resolvable capture date go
// to <root>/<no_date> (uniques) or <root>/<duplicates>/<no_date>
// (duplicates); duplicates deliberately get their own date-less subtree so
// the duplicates directory stays self-contained. Filename collisions at
// the destination are resolved by probing numeric suffixes (_1, _2, …)
// until an unused name is found. Processing is strictly sequential, so the
// probe never races.
package placement
