package render

import (
	"bufio"
	"io"
)

// WriterSink writes frames as plain text for pipes and batch runs
// Each frame is its rows joined by newlines followed by the delimiter
type WriterSink struct {
	w         *bufio.Writer
	delimiter string
}

// NewWriterSink creates a sink writing to w with a form feed between frames
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w), delimiter: "\f\n"}
}

// SetDelimiter replaces the inter-frame delimiter
func (s *WriterSink) SetDelimiter(d string) {
	s.delimiter = d
}

func (s *WriterSink) Display(glyphs []rune, width, height int) error {
	for y := 0; y < height; y++ {
		for _, r := range glyphs[y*width : (y+1)*width] {
			s.w.WriteRune(r)
		}
		s.w.WriteByte('\n')
	}
	s.w.WriteString(s.delimiter)
	return s.w.Flush()
}
