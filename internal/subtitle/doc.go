// Package subtitle turns word-level transcription output into timed subtitle
// lines and overlay directives for burning into the final composite.
//
// Group partitions a transcript into lines under the line-break policy,
// ShiftLine/ShiftLines move FROZEN-segment lines onto the composite timeline,
// and Plan converts lines into ordered overlay directives for the sequential
// and progressive (karaoke) render modes. Everything here is pure: callers
// pass complete word sequences in and receive fresh values back.
package subtitle
