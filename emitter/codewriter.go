package emitter

import (
	"fmt"
	"io"

	"github.com/joeshaw/multierror"
	"github.com/pkg/errors"
)

// CodeWriter is an append-only text-assembly buffer over an io.Writer:
// writes accumulate errors instead of returning them, so a generator can
// be written as an uninterrupted chain of calls and check for trouble
// once, at Finalize.
type CodeWriter struct {
	dest        io.Writer
	errors      multierror.Errors
	prefix      []byte
	indent      []byte
	bytes       uint64
	writeFailed bool
	newline     bool
}

// NewCodeWriter returns a CodeWriter over target, indenting each Indent
// level by indent.
func NewCodeWriter(target io.Writer, indent string) *CodeWriter {
	return &CodeWriter{
		dest:   target,
		indent: []byte(indent),
	}
}

func (c *CodeWriter) write(data []byte) *CodeWriter {
	total := len(data)
	if total == 0 || c.writeFailed {
		return c
	}
	written, err := c.dest.Write(data)
	if err != nil || written != total {
		if err == nil {
			err = errors.New("short write")
		}
		c.writeFailed = true
		c.Err(errors.Wrap(ErrIO, err.Error()))
		return c
	}
	c.bytes += uint64(total)
	return c
}

// Raw writes s verbatim, bypassing line-prefix indentation.
func (c *CodeWriter) Raw(raw string) *CodeWriter {
	return c.RawBytes([]byte(raw))
}

// RawBytes is Raw for a byte slice.
func (c *CodeWriter) RawBytes(raw []byte) *CodeWriter {
	c.newline = false
	return c.write(raw)
}

// Err records err for Finalize, if non-nil.
func (c *CodeWriter) Err(err error) *CodeWriter {
	if err != nil {
		c.errors = append(c.errors, err)
	}
	return c
}

// Newline emits a line break; the next Write call re-applies the current
// indent prefix.
func (c *CodeWriter) Newline() *CodeWriter {
	c.newline = true
	return c.write([]byte{'\n'})
}

// Write appends s, applying the current indent prefix if the cursor is
// at the start of a line.
func (c *CodeWriter) Write(s string) *CodeWriter {
	return c.WriteBytes([]byte(s))
}

// WriteBytes is Write for a byte slice.
func (c *CodeWriter) WriteBytes(s []byte) *CodeWriter {
	if c.newline {
		c.newline = false
		c.write(c.prefix)
	}
	return c.write(s)
}

// Writef is Write with fmt.Sprintf formatting.
func (c *CodeWriter) Writef(format string, args ...interface{}) *CodeWriter {
	return c.Write(fmt.Sprintf(format, args...))
}

// Indent increases the line prefix by one indent level.
func (c *CodeWriter) Indent() *CodeWriter {
	c.prefix = append(c.prefix, c.indent...)
	return c
}

// Unindent decreases the line prefix by one indent level.
func (c *CodeWriter) Unindent() *CodeWriter {
	if a, b := len(c.prefix), len(c.indent); a >= b {
		c.prefix = c.prefix[:a-b]
	} else {
		c.Err(errors.New("indent below zero"))
	}
	return c
}

// Finalize returns the total bytes written and, if any write or
// formatting call recorded an error, a single aggregated error produced
// by github.com/joeshaw/multierror.
func (c *CodeWriter) Finalize() (count uint64, err error) {
	return c.bytes, c.errors.Err()
}
