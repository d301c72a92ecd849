// Package render sequences one holdcut run.
//
// An Orchestrator probes the source video, downloads the hold audio, assembles
// the freeze timeline, transcribes both audio segments while the splice is
// prepared, plans the subtitle overlay, and encodes the composite. Encoding
// happens inside a per-run work directory; the result is published to its
// final path only after ffmpeg succeeds. Collaborators are interfaces so the
// sequence can be exercised without external tools.
package render
