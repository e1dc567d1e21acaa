package packet

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"unicode/utf16"

	"github.com/udisondev/ms2go/internal/model"
)

// Writer provides methods for writing outbound message data.
// Uses Little-Endian byte order for all multi-byte values.
// Every message starts with a uint16 opcode (see Of).
type Writer struct {
	buf *bytes.Buffer
}

// writerPool reduces allocations by reusing Writers.
// Get() returns a Writer with Reset() called, Put() returns it to pool.
var writerPool = sync.Pool{
	New: func() any {
		return &Writer{
			buf: bytes.NewBuffer(make([]byte, 0, 512)),
		}
	},
}

// Get returns a Writer from the pool (already Reset).
func Get() *Writer {
	w := writerPool.Get().(*Writer)
	w.Reset()
	return w
}

// Put returns a Writer to the pool for reuse.
// IMPORTANT: Do not use the Writer after calling Put.
func (w *Writer) Put() {
	writerPool.Put(w)
}

// NewWriter creates a new packet writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{
		buf: bytes.NewBuffer(make([]byte, 0, capacity)),
	}
}

// Of creates a writer with the opcode already written.
func Of(opcode uint16, capacity int) *Writer {
	w := NewWriter(capacity + 2)
	w.WriteUShort(opcode)
	return w
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

// WriteBool writes a bool as a single byte (0/1).
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
		return
	}
	w.buf.WriteByte(0)
}

// WriteShort writes an int16 (2 bytes, LE).
func (w *Writer) WriteShort(val int16) {
	w.WriteUShort(uint16(val))
}

// WriteUShort writes a uint16 (2 bytes, LE).
func (w *Writer) WriteUShort(val uint16) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
}

// WriteInt writes an int32 (4 bytes, LE).
func (w *Writer) WriteInt(val int32) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
	w.buf.WriteByte(byte(val >> 16))
	w.buf.WriteByte(byte(val >> 24))
}

// WriteLong writes an int64 (8 bytes, LE).
func (w *Writer) WriteLong(val int64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(val))
	w.buf.Write(tmp[:])
}

// WriteFloat writes a float32 (4 bytes, LE, IEEE 754).
func (w *Writer) WriteFloat(val float32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(val))
	w.buf.Write(tmp[:])
}

// WriteVector3 writes three float32 components (x, y, z).
func (w *Writer) WriteVector3(v model.Vector3) {
	w.WriteFloat(v.X)
	w.WriteFloat(v.Y)
	w.WriteFloat(v.Z)
}

// WriteUnicodeString writes a uint16 length prefix (in UTF-16 code units)
// followed by the UTF-16LE encoded string. No terminator.
func (w *Writer) WriteUnicodeString(s string) {
	units := utf16.Encode([]rune(s))
	w.WriteUShort(uint16(len(units)))
	for _, u := range units {
		w.buf.WriteByte(byte(u))
		w.buf.WriteByte(byte(u >> 8))
	}
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(data []byte) {
	_, _ = w.buf.Write(data)
}

// Bytes returns the accumulated packet data.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the current length of the packet.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset clears the buffer for reuse.
func (w *Writer) Reset() {
	w.buf.Reset()
}
