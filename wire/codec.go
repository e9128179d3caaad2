// Package wire implements the binary frame codec and the typed
// request/response catalog carried over it. Multi-byte integers are
// little-endian; decoding walks a byte-slice cursor, encoding appends
// to a growable buffer. Strings are length-prefixed UTF-8.
package wire

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the frame header: a 4-byte command id followed by a
// 4-byte payload length, both little-endian.
const HeaderSize = 8

// MinFrameSize is the smallest legal frame (an empty-body command).
const MinFrameSize = HeaderSize

// EncodeFrame prepends the cmd_id/length header to body and returns the
// full frame, ready to send as a single WebSocket binary message.
func EncodeFrame(cmdID uint32, body []byte) []byte {
	frame := make([]byte, HeaderSize+len(body))
	binary.LittleEndian.PutUint32(frame[0:4], cmdID)
	binary.LittleEndian.PutUint32(frame[4:8], uint32(len(body)))
	copy(frame[HeaderSize:], body)
	return frame
}

// DecodeFrame splits a raw WebSocket message into its command id and
// body. A message shorter than MinFrameSize, or whose declared length
// disagrees with the body actually received, is rejected with
// ErrInvalidFormat so the dispatcher can answer with
// ERROR_RSP{INVALID_FORMAT} and keep the connection open.
func DecodeFrame(raw []byte) (cmdID uint32, body []byte, err error) {
	if len(raw) < MinFrameSize {
		return 0, nil, ErrInvalidFormat
	}
	cmdID = binary.LittleEndian.Uint32(raw[0:4])
	length := binary.LittleEndian.Uint32(raw[4:8])
	body = raw[HeaderSize:]
	if uint32(len(body)) != length {
		return 0, nil, ErrInvalidFormat
	}
	return cmdID, body, nil
}

// ErrInvalidFormat is returned by DecodeFrame and by body decoders when
// the bytes on the wire don't match the declared shape.
var ErrInvalidFormat = fmt.Errorf("wire: invalid frame")

// Writer accumulates an outgoing message body field by field.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer with a small pre-allocation so the
// common short bodies never reallocate.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) WriteU8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *Writer) WriteI64(v int64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	w.buf = append(w.buf, tmp[:]...)
}

// WriteString writes a u32 byte-length prefix followed by the UTF-8
// bytes of s, no terminator. Strings on this protocol carry opaque
// tokens and ids, so the length prefix is load-bearing.
func (w *Writer) WriteString(s string) {
	w.WriteU32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// Bytes returns the accumulated body.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reader walks a decoded message body field by field.
type Reader struct {
	data []byte
	pos  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) ReadBool() (bool, error) {
	if r.pos+1 > len(r.data) {
		return false, ErrInvalidFormat
	}
	v := r.data[r.pos] != 0
	r.pos++
	return v, nil
}

func (r *Reader) ReadU8() (uint8, error) {
	if r.pos+1 > len(r.data) {
		return 0, ErrInvalidFormat
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) ReadU32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, ErrInvalidFormat
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) ReadI64() (int64, error) {
	if r.pos+8 > len(r.data) {
		return 0, ErrInvalidFormat
	}
	v := int64(binary.LittleEndian.Uint64(r.data[r.pos:]))
	r.pos += 8
	return v, nil
}

// ReadString reads a u32 byte-length prefix then that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	if r.pos+int(n) > len(r.data) {
		return "", ErrInvalidFormat
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

// Done reports whether the whole body has been consumed. Decoders call
// this after reading every field to reject a frame with trailing junk.
func (r *Reader) Done() bool {
	return r.pos == len(r.data)
}
