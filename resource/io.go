package resource

import (
	"context"
	"io"
)

// RateLimitedReader wraps an io.Reader with the controller's IO limit.
type RateLimitedReader struct {
	ctx context.Context
	r   io.Reader
	rc  *Controller
}

// NewRateLimitedReader creates a new RateLimitedReader. A nil controller
// passes reads through unthrottled.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *RateLimitedReader {
	return &RateLimitedReader{
		ctx: ctx,
		r:   r,
		rc:  rc,
	}
}

func (r *RateLimitedReader) Read(p []byte) (int, error) {
	// Wait for the full (capped) buffer up front; short reads just leave
	// unused tokens behind.
	p = p[:r.rc.ioChunk(len(p))]
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Reader is shorthand for NewRateLimitedReader(ctx, r, c).
func (c *Controller) Reader(ctx context.Context, r io.Reader) io.Reader {
	return NewRateLimitedReader(ctx, r, c)
}
