// Package ffprobe runs ffprobe and exposes the handful of media facts the
// render pipeline needs: container duration, the primary video stream's
// geometry and frame rate, and whether an audio stream is present.
package ffprobe
