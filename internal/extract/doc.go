// Package extract wraps the external ffmpeg/ffprobe tools behind the frame
// extraction contract: frame counting (fast codec-level query or full
// decode), full or selective frame extraction with per-file atomic renames
// out of a staging directory, and audio/container operations. Subprocess
// failures surface as external tool errors; an extraction that produces no
// output is an error, never an empty success.
package extract
