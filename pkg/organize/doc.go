// Package organize groups the files of a directory into subdirectories keyed
// by filename prefix, and undoes such groupings.
//
// A plan is built by splitting each filename at the first occurrence of a
// separator; the text before it, sanitized to a directory-safe name, becomes
// the category. Applying a plan creates one directory per category and moves
// the files in, optionally stripping the prefix from the moved names.
// Reversal moves everything back, re-attaching prefixes when they were
// stripped, and removes the emptied category directories.
//
// The engine only ever renames files and removes empty directories; it never
// deletes file content. Every per-file failure is accumulated in the Result
// rather than aborting the run.
package organize
