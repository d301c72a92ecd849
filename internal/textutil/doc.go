// Package textutil provides filename sanitization and the word-based slug used
// to name rendered videos.
package textutil
