// Package logtail reads the tail of the pkgdrop log file and renders its JSON
// entries for a terminal.
//
// Read keeps a ring buffer of maxLines entries, so memory stays bounded no
// matter how large the log has grown. Format turns one zap JSON entry into
// "time LEVEL logger message key=value ..." with the extra fields sorted by
// key. Anything that is not a JSON object is passed through untouched, so a
// hand-edited or truncated file still prints.
package logtail
