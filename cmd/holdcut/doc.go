// Package main hosts the holdcut CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration once per invocation,
// builds the ffmpeg, yt-dlp, and WhisperX adapters, and hands them to the
// render orchestrator. The plan and timeline commands expose the subtitle and
// timeline computations on their own so they can be inspected without
// rendering, and doctor reports whether the machine is ready to render.
package main
