package chunk

import (
	"encoding/binary"
	"fmt"
)

// IHDRLength is the fixed payload length of the image header chunk.
const IHDRLength = 13

// IHDR holds the decoded fields of an image header payload. Fields are
// decoded as-is; legality of the combinations (bit depth vs. color type and
// so on) is a codec concern and is not judged here.
type IHDR struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// ParseIHDR decodes an IHDR chunk payload. The only validation performed is
// the fixed 13-byte length.
func ParseIHDR(payload []byte) (IHDR, error) {
	if len(payload) != IHDRLength {
		return IHDR{}, fmt.Errorf("IHDR payload must be %d bytes, got %d", IHDRLength, len(payload))
	}
	return IHDR{
		Width:       binary.BigEndian.Uint32(payload[0:4]),
		Height:      binary.BigEndian.Uint32(payload[4:8]),
		BitDepth:    payload[8],
		ColorType:   payload[9],
		Compression: payload[10],
		Filter:      payload[11],
		Interlace:   payload[12],
	}, nil
}

func (h IHDR) String() string {
	return fmt.Sprintf("%dx%d %d-bit color type %d", h.Width, h.Height, h.BitDepth, h.ColorType)
}
