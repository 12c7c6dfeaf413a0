package video

import (
	"image"

	"framelab/internal/faults"
)

// Frames is an open decoding handle with random access to decoded frames.
// Implementations are external collaborators; this package only manages the
// handle lifecycle.
type Frames interface {
	Frame(index int) (image.Image, error)
	Len() int
	Close() error
}

// Decoder opens a video file for decoding.
type Decoder interface {
	Open(path string) (Frames, error)
}

// Open acquires a decoding handle for the record's video. Opening an
// already-open record is a no-op.
func (r *Record) Open(dec Decoder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle != nil {
		return nil
	}
	if dec == nil {
		return faults.Wrap(faults.ErrConfiguration, "video", "open", "decoder required", nil)
	}
	handle, err := dec.Open(r.videoPath)
	if err != nil {
		return faults.Wrap(faults.ErrExternalTool, "video", "open", r.videoPath, err)
	}
	r.handle = handle
	return nil
}

// Close releases the decoding handle. Closing an unopened record is a
// no-op, so Close is safe on every exit path.
func (r *Record) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle == nil {
		return nil
	}
	err := r.handle.Close()
	r.handle = nil
	return err
}

// IsOpen reports whether a decoding handle is held.
func (r *Record) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle != nil
}

// Frame retrieves a single decoded frame. The handle must be open.
func (r *Record) Frame(index int) (image.Image, error) {
	r.mu.Lock()
	handle := r.handle
	r.mu.Unlock()
	if handle == nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "frame", "video is not open; call Open first", nil)
	}
	return handle.Frame(index)
}
