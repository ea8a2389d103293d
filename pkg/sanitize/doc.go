// Package sanitize normalizes rendered clause markdown into prose suitable
// for a formal policy document.
//
// The sanitizer converts table rows into blockquote callouts, rewrites
// bullet runs as either procedural ordered lists or narrative prose,
// strips bold markers, removes leaked table-of-contents fragments behind a
// tunable threshold, and applies a final whitespace cleanup. Sanitization
// is idempotent: re-running it on its own output is a no-op.
package sanitize
