// Package engine composes the final video with ffmpeg.
//
// A Clip is a lazy description of the composite: the source video trimmed at
// the freeze point, its last frame held for the hold-audio duration, the hold
// audio appended after the original audio, and optionally an ASS script of
// timed text layers. Splice and Overlay only build the description; Encode
// runs a single ffmpeg invocation that renders it. Overlay directives are
// written as ASS Dialogue events whose Layer field carries the z-order, so
// later directives draw above earlier ones.
package engine
