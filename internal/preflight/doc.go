// Package preflight provides readiness checks for the filesystem paths,
// external tools, and remote inputs a render depends on.
//
// The render command runs RunAll before touching any media so a doomed run
// fails in seconds rather than after a download and two transcriptions. The
// doctor command prints the same results as a table.
package preflight
