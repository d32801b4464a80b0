package player

import (
	"encoding/binary"
	"fmt"
	"math"
)

// OSC 1.0, big-endian, fields padded to 4-byte boundaries.

func pad4(n int) int {
	return (4 - n%4) % 4
}

func appendPadded(buf []byte, s string) []byte {
	buf = append(buf, s...)
	buf = append(buf, 0)
	for i := 0; i < pad4(len(s)+1); i++ {
		buf = append(buf, 0)
	}
	return buf
}

func encodeOSC(addr string, args ...any) []byte {
	var buf []byte
	buf = appendPadded(buf, addr)

	typetag := ","
	for _, arg := range args {
		switch arg.(type) {
		case int32:
			typetag += "i"
		case float32:
			typetag += "f"
		case string:
			typetag += "s"
		case []byte:
			typetag += "b"
		case bool:
			if arg.(bool) {
				typetag += "T"
			} else {
				typetag += "F"
			}
		}
	}
	buf = appendPadded(buf, typetag)

	for _, arg := range args {
		switch v := arg.(type) {
		case int32:
			buf = binary.BigEndian.AppendUint32(buf, uint32(v))
		case float32:
			buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(v))
		case string:
			buf = appendPadded(buf, v)
		case []byte:
			buf = binary.BigEndian.AppendUint32(buf, uint32(len(v)))
			buf = append(buf, v...)
			for i := 0; i < pad4(len(v)); i++ {
				buf = append(buf, 0)
			}
		}
	}

	return buf
}

func decodeOSC(data []byte) (addr string, args []any, err error) {
	if len(data) < 4 {
		return "", nil, fmt.Errorf("osc: message too short")
	}

	addr, pos := readPadded(data, 0)

	if pos >= len(data) || data[pos] != ',' {
		return addr, nil, nil
	}
	typetag, pos := readPadded(data, pos)

	for _, t := range typetag[1:] {
		switch t {
		case 'i':
			if pos+4 > len(data) {
				return addr, args, fmt.Errorf("osc: truncated int32")
			}
			args = append(args, int32(binary.BigEndian.Uint32(data[pos:])))
			pos += 4
		case 'f':
			if pos+4 > len(data) {
				return addr, args, fmt.Errorf("osc: truncated float32")
			}
			args = append(args, math.Float32frombits(binary.BigEndian.Uint32(data[pos:])))
			pos += 4
		case 's':
			if pos >= len(data) {
				return addr, args, fmt.Errorf("osc: truncated string")
			}
			var s string
			s, pos = readPadded(data, pos)
			args = append(args, s)
		case 'b':
			if pos+4 > len(data) {
				return addr, args, fmt.Errorf("osc: truncated blob size")
			}
			size := int(binary.BigEndian.Uint32(data[pos:]))
			pos += 4
			if pos+size > len(data) {
				return addr, args, fmt.Errorf("osc: truncated blob")
			}
			b := make([]byte, size)
			copy(b, data[pos:pos+size])
			args = append(args, b)
			pos += size + pad4(size)
		case 'T':
			args = append(args, true)
		case 'F':
			args = append(args, false)
		case 'N':
			args = append(args, nil)
		}
	}

	return addr, args, nil
}

func readPadded(data []byte, pos int) (string, int) {
	if pos >= len(data) {
		return "", len(data)
	}
	end := pos
	for end < len(data) && data[end] != 0 {
		end++
	}
	s := string(data[pos:end])
	return s, end + 1 + pad4(end-pos+1)
}
