package llm

import "io"

// Stream is an ordered sequence of text fragments from a chat completion.
//
// Recv returns the next fragment, io.EOF when the response is complete, or
// a transport/decode error. Fragments arrive in order; the underlying
// transports guarantee in-order delivery per stream, so no reordering is
// needed. Close releases the underlying connection and may be called at any
// time, including concurrently with a blocked Recv.
type Stream struct {
	recvFn  func() (string, error)
	closeFn func() error
}

// NewStream builds a Stream from a receive function and a close function.
func NewStream(recv func() (string, error), closeFn func() error) *Stream {
	return &Stream{recvFn: recv, closeFn: closeFn}
}

// Recv returns the next text fragment. It returns io.EOF after the final
// fragment has been delivered.
func (s *Stream) Recv() (string, error) {
	return s.recvFn()
}

// Close cancels the underlying request and releases its resources.
// A stream abandoned without Close leaks the HTTP response body.
func (s *Stream) Close() error {
	return s.closeFn()
}

// Drain reads the stream to completion, concatenating all fragments.
// Used in tests and non-incremental callers.
func (s *Stream) Drain() (string, error) {
	defer s.Close()

	var out string
	for {
		frag, err := s.Recv()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out += frag
	}
}
