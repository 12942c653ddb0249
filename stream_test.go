package scribex

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// chunkReader delivers its payload in fixed pre-split chunks, one per Read.
type chunkReader struct {
	chunks [][]byte
	pos    int
	closed bool
	err    error // returned after the last chunk instead of io.EOF
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.chunks) {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[r.pos])
	r.pos++
	return n, nil
}

func (r *chunkReader) Close() error {
	r.closed = true
	return nil
}

func splitAt(data []byte, positions ...int) [][]byte {
	var chunks [][]byte
	prev := 0
	for _, pos := range positions {
		chunks = append(chunks, data[prev:pos])
		prev = pos
	}
	return append(chunks, data[prev:])
}

func collect(t *testing.T, s *TextStream) (string, error) {
	t.Helper()
	var sb strings.Builder
	for s.Next() {
		if s.Current() == "" {
			t.Error("Next returned true with an empty fragment")
		}
		sb.WriteString(s.Current())
	}
	return sb.String(), s.Err()
}

func TestTextStream_BoundaryInvariance(t *testing.T) {
	// Mixed-width text: 1-byte ASCII, 2-byte é/ö, 3-byte CJK and em dash,
	// 4-byte emoji.
	samples := []string{
		"plain ascii only",
		"héllo wörld",
		"日本語のテキスト",
		"mixed — ascii, émoji 🎉 and 中文",
		"🎉🎊🎈",
	}

	for _, sample := range samples {
		data := []byte(sample)
		// Split into two chunks at every byte position, including ones that
		// land mid-rune.
		for pos := 0; pos <= len(data); pos++ {
			r := &chunkReader{chunks: splitAt(data, pos)}
			got, err := collect(t, NewTextStream(r))
			if err != nil {
				t.Fatalf("split %q at %d: unexpected error: %v", sample, pos, err)
			}
			if got != sample {
				t.Errorf("split %q at %d: got %q", sample, pos, got)
			}
			if !r.closed {
				t.Errorf("split %q at %d: byte source not closed at end of data", sample, pos)
			}
		}
	}
}

func TestTextStream_SingleByteChunks(t *testing.T) {
	sample := "a—b🎉c"
	data := []byte(sample)
	chunks := make([][]byte, len(data))
	for i := range data {
		chunks[i] = data[i : i+1]
	}

	got, err := collect(t, NewTextStream(&chunkReader{chunks: chunks}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sample {
		t.Errorf("got %q, want %q", got, sample)
	}
}

func TestTextStream_MalformedBytes(t *testing.T) {
	tests := []struct {
		name   string
		chunks [][]byte
		want   string
	}{
		{
			name:   "stray continuation byte",
			chunks: [][]byte{{'a', 0x80, 'b'}},
			want:   "a�b",
		},
		{
			name:   "truncated sequence at end of data",
			chunks: [][]byte{[]byte("ok"), {0xE4, 0xB8}}, // first two bytes of 中
			want:   "ok��",
		},
		{
			name:   "start byte followed by ascii",
			chunks: [][]byte{{0xE2, '('}, {0xA1}},
			want:   "�(�",
		},
		{
			name:   "invalid run split across chunks",
			chunks: [][]byte{{'x', 0xFF}, {0xFE, 'y'}},
			want:   "x��y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collect(t, NewTextStream(&chunkReader{chunks: tt.chunks}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextStream_SourceErrorIsTerminal(t *testing.T) {
	readErr := errors.New("connection reset")
	r := &chunkReader{chunks: [][]byte{[]byte("partial ")}, err: readErr}
	s := NewTextStream(r)

	if !s.Next() {
		t.Fatal("expected first fragment before the failure")
	}
	if s.Current() != "partial " {
		t.Errorf("first fragment = %q", s.Current())
	}
	if s.Next() {
		t.Error("expected stream to end after source failure")
	}
	if !errors.Is(s.Err(), readErr) {
		t.Errorf("Err() = %v, want %v", s.Err(), readErr)
	}
	if !r.closed {
		t.Error("byte source not closed after failure")
	}
	// Fragments delivered before the failure remain valid.
	if s.Current() != "partial " {
		t.Errorf("delivered fragment retracted: %q", s.Current())
	}
}

func TestTextStream_ErrorFlushesPendingTail(t *testing.T) {
	readErr := errors.New("body aborted")
	// Error arrives while a partial rune is buffered.
	r := &chunkReader{chunks: [][]byte{{'a', 0xE4, 0xB8}}, err: readErr}
	s := NewTextStream(r)

	if !s.Next() {
		t.Fatal("expected fragment")
	}
	if s.Current() != "a" {
		t.Errorf("first fragment = %q, want %q", s.Current(), "a")
	}
	// The buffered tail can never complete; it is replacement-decoded.
	if !s.Next() {
		t.Fatal("expected flushed tail fragment")
	}
	if s.Current() != "��" {
		t.Errorf("flushed tail = %q", s.Current())
	}
	if s.Next() {
		t.Error("expected end of stream")
	}
	if !errors.Is(s.Err(), readErr) {
		t.Errorf("Err() = %v, want %v", s.Err(), readErr)
	}
}

func TestTextStream_CloseReleasesSource(t *testing.T) {
	r := &chunkReader{chunks: splitAt([]byte("one two three"), 3, 7)}
	s := NewTextStream(r)

	if !s.Next() {
		t.Fatal("expected first fragment")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !r.closed {
		t.Error("byte source not closed after abandoning the stream")
	}
	if s.Next() {
		t.Error("Next returned true after Close")
	}
	// Close is idempotent.
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestTextStream_EmptySource(t *testing.T) {
	r := &chunkReader{}
	s := NewTextStream(r)
	if s.Next() {
		t.Error("expected no fragments from empty source")
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v, want nil", s.Err())
	}
	if !r.closed {
		t.Error("byte source not closed")
	}
}

func TestDecodeReplacing(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("ascii"), "ascii"},
		{[]byte("日本語"), "日本語"},
		{[]byte{0xFF}, "�"},
		{[]byte{0xFF, 0xFF}, "��"},
		{[]byte{'a', 0xC3}, "a�"},
	}
	for _, tt := range tests {
		if got := decodeReplacing(tt.in); got != tt.want {
			t.Errorf("decodeReplacing(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
