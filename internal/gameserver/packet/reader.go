package packet

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/udisondev/ms2go/internal/model"
)

// Reader provides methods for reading inbound message data.
// Uses Little-Endian byte order for all multi-byte values.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new packet reader.
func NewReader(data []byte) *Reader {
	return &Reader{
		data: data,
		pos:  0,
	}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("ReadByte: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadUShort reads a uint16 (2 bytes, LE).
func (r *Reader) ReadUShort() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, fmt.Errorf("ReadUShort: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	val := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return val, nil
}

// ReadInt reads an int32 (4 bytes, LE).
func (r *Reader) ReadInt() (int32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("ReadInt: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	val := int32(binary.LittleEndian.Uint32(r.data[r.pos:]))
	r.pos += 4
	return val, nil
}

// ReadLong reads an int64 (8 bytes, LE).
func (r *Reader) ReadLong() (int64, error) {
	if r.pos+8 > len(r.data) {
		return 0, fmt.Errorf("ReadLong: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	val := int64(binary.LittleEndian.Uint64(r.data[r.pos:]))
	r.pos += 8
	return val, nil
}

// ReadFloat reads a float32 (4 bytes, LE).
func (r *Reader) ReadFloat() (float32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("ReadFloat: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	bits := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return math.Float32frombits(bits), nil
}

// ReadVector3 reads three float32 components.
func (r *Reader) ReadVector3() (model.Vector3, error) {
	var v model.Vector3
	var err error
	if v.X, err = r.ReadFloat(); err != nil {
		return v, err
	}
	if v.Y, err = r.ReadFloat(); err != nil {
		return v, err
	}
	if v.Z, err = r.ReadFloat(); err != nil {
		return v, err
	}
	return v, nil
}

// ReadUnicodeString reads a uint16-length-prefixed UTF-16LE string.
func (r *Reader) ReadUnicodeString() (string, error) {
	n, err := r.ReadUShort()
	if err != nil {
		return "", fmt.Errorf("ReadUnicodeString: %w", err)
	}
	if r.pos+int(n)*2 > len(r.data) {
		return "", fmt.Errorf("ReadUnicodeString: not enough data (pos=%d, need=%d, len=%d)", r.pos, int(n)*2, len(r.data))
	}

	units := make([]uint16, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(r.data[r.pos:])
		r.pos += 2
	}
	return string(utf16.Decode(units)), nil
}

// ReadBytes reads n bytes without copying; the result aliases the packet buffer.
// IMPORTANT: Caller MUST NOT modify returned bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("ReadBytes: negative count %d", n)
	}
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("ReadBytes: not enough data (pos=%d, need=%d, len=%d)", r.pos, n, len(r.data))
	}

	bytes := r.data[r.pos : r.pos+n]
	r.pos += n
	return bytes, nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Position returns the current read position.
func (r *Reader) Position() int {
	return r.pos
}
