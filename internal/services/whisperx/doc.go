// Package whisperx runs WhisperX through uvx and turns its JSON output into
// word-level timings.
//
// Transcribe is the entry point: it invokes WhisperX on an audio file, loads
// the aligned JSON it writes, and returns the words ordered by start time.
// Words WhisperX could not align inherit timing from their neighbours.
// Model, device, VAD method, and language come from Config.
package whisperx
