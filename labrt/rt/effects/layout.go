package effects

import (
	"bytes"
	"encoding/binary"
	"math"
	"reflect"
)

// encodeBlock flattens a parameter block into little endian bytes in field
// order. Blocks are plain structs of 32-bit scalars, fixed arrays of them
// (mgl32 vectors) and blank padding fields, mirroring the WGSL uniform struct
// the kernel declares.
func encodeBlock(block any) []byte {
	buf := new(bytes.Buffer)
	writeUniform(reflect.ValueOf(block), buf)
	return buf.Bytes()
}

func writeUniform(field reflect.Value, buf *bytes.Buffer) {
	var word [4]byte
	switch field.Kind() {
	case reflect.Array:
		for i := 0; i < field.Len(); i++ {
			writeUniform(field.Index(i), buf)
		}

	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			writeUniform(field.Field(i), buf)
		}

	case reflect.Float32:
		binary.LittleEndian.PutUint32(word[:], math.Float32bits(float32(field.Float())))
		buf.Write(word[:])

	case reflect.Int32:
		binary.LittleEndian.PutUint32(word[:], uint32(int32(field.Int())))
		buf.Write(word[:])

	case reflect.Uint32:
		binary.LittleEndian.PutUint32(word[:], uint32(field.Uint()))
		buf.Write(word[:])

	default:
		// unknown kinds keep their footprint so offsets after them stay put
		buf.Write(make([]byte, field.Type().Size()))
	}
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
