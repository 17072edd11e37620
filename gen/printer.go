package gen

import (
	"bytes"
	"fmt"
	"strings"
)

// printer accumulates generated source with tab indentation.
type printer struct {
	buf    bytes.Buffer
	indent int
}

// P writes one line at the current indent. An empty format emits a blank
// line.
func (p *printer) P(format string, args ...interface{}) {
	if format == "" {
		p.buf.WriteByte('\n')
		return
	}
	p.buf.WriteString(strings.Repeat("\t", p.indent))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

// In increases the indent level.
func (p *printer) In() {
	p.indent++
}

// Out decreases the indent level.
func (p *printer) Out() {
	p.indent--
}

// Bytes returns the accumulated source.
func (p *printer) Bytes() []byte {
	return p.buf.Bytes()
}
