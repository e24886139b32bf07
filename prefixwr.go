package elmdesk

import (
	"bytes"
	"io"
)

// prefixWriter writes prefix before each line written to w. An indent writer
// starts within a line, i.e. only continuation lines get the prefix.
type prefixWriter struct {
	w      io.Writer
	prefix []byte
	inLine bool
}

func newIndentWriter(w io.Writer, indent string) *prefixWriter {
	return &prefixWriter{w: w, prefix: []byte(indent), inLine: true}
}

func (pw *prefixWriter) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		if !pw.inLine {
			if _, err := pw.w.Write(pw.prefix); err != nil {
				return n, err
			}
			pw.inLine = true
		}
		nl := bytes.IndexByte(p, '\n')
		if nl < 0 {
			m, err := pw.w.Write(p)
			return n + m, err
		}
		nl++
		m, err := pw.w.Write(p[:nl])
		n += m
		if err != nil {
			return n, err
		}
		pw.inLine = false
		p = p[nl:]
	}
	return n, nil
}
