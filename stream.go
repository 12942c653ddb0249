package scribex

import (
	"io"
	"strings"
	"unicode/utf8"
)

// readChunkSize is the size of each read from the underlying byte source.
const readChunkSize = 4096

// TextStream adapts a raw byte stream into a lazy, single-pass, forward-only
// sequence of decoded text fragments. It is the bridge between a provider's
// response body and the consumer rendering incremental output.
//
// A multi-byte character split across two reads is never delivered truncated:
// the incomplete tail is carried and prepended to the next chunk before
// decoding. Bytes that can never form a valid character are replaced with
// U+FFFD, one replacement per invalid byte, so decoding a byte sequence
// through the stream yields the same text regardless of where the chunk
// boundaries fall. No byte is dropped or duplicated.
//
// Usage follows the pull-iterator shape:
//
//	stream := scribex.NewTextStream(resp.Body)
//	defer stream.Close()
//	for stream.Next() {
//		render(stream.Current())
//	}
//	if err := stream.Err(); err != nil { handle terminal failure }
//
// The stream is not restartable and must not be shared between goroutines.
// A consumer that stops pulling early must call Close to release the
// underlying byte source.
type TextStream struct {
	rc      io.ReadCloser
	buf     []byte
	carry   []byte // incomplete trailing rune bytes held across reads
	current string
	err     error
	done    bool
	closed  bool
}

// NewTextStream wraps a byte source in a text-fragment stream.
// The stream takes ownership of rc and closes it on terminal conditions or
// when Close is called.
func NewTextStream(rc io.ReadCloser) *TextStream {
	return &TextStream{rc: rc, buf: make([]byte, readChunkSize)}
}

// Next advances to the next fragment. It returns false when the byte source
// is exhausted or failed; Err distinguishes the two.
func (s *TextStream) Next() bool {
	if s.done {
		return false
	}
	for {
		n, err := s.rc.Read(s.buf)

		var frag strings.Builder
		if n > 0 {
			data := s.buf[:n]
			if len(s.carry) > 0 {
				data = append(s.carry, data...)
			}
			complete, tail := splitRuneTail(data)
			s.carry = append([]byte(nil), tail...)
			if len(complete) > 0 {
				frag.WriteString(decodeReplacing(complete))
			}
		}

		if err != nil {
			s.done = true
			// A trailing sequence that never completed is malformed;
			// replacement-decode it rather than failing.
			if len(s.carry) > 0 {
				frag.WriteString(decodeReplacing(s.carry))
				s.carry = nil
			}
			if err != io.EOF {
				s.err = err
			}
			s.close()
			if frag.Len() > 0 {
				s.current = frag.String()
				return true
			}
			return false
		}

		if frag.Len() > 0 {
			s.current = frag.String()
			return true
		}
		// Everything read so far is a partial rune; keep pulling.
	}
}

// Current returns the fragment produced by the last successful Next call.
func (s *TextStream) Current() string {
	return s.current
}

// Err returns the terminal error of the stream, or nil if it ended cleanly.
// Only the underlying byte source can fail; malformed bytes are substituted,
// never surfaced.
func (s *TextStream) Err() error {
	return s.err
}

// Close releases the underlying byte source. It is safe to call at any
// point, including after abandoning the stream mid-way, and is idempotent.
func (s *TextStream) Close() error {
	s.done = true
	return s.close()
}

func (s *TextStream) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.rc.Close()
}

// splitRuneTail splits b into a decodable prefix and a trailing byte sequence
// that could still grow into a valid rune. The tail is empty unless b ends
// with the start of a multi-byte encoding that is incomplete so far.
func splitRuneTail(b []byte) (complete, tail []byte) {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		c := b[i]
		if c < utf8.RuneSelf {
			break // ASCII byte, nothing pending
		}
		if utf8.RuneStart(c) {
			if !utf8.FullRune(b[i:]) {
				return b[:i], b[i:]
			}
			break
		}
	}
	return b, nil
}

// decodeReplacing decodes b, substituting U+FFFD for each invalid byte.
// Substituting per byte (rather than per invalid run) keeps the result
// independent of chunk boundaries.
func decodeReplacing(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
