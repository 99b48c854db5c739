package chunk

import (
	"hash/crc32"
	"testing"
)

func TestChecksum_KnownVectors(t *testing.T) {
	testCases := []struct {
		name  string
		parts [][]byte
		want  uint32
	}{
		{
			name:  "empty input",
			parts: [][]byte{},
			want:  0,
		},
		{
			name:  "standard check value",
			parts: [][]byte{[]byte("123456789")},
			want:  0xCBF43926,
		},
		{
			name:  "IEND chunk type with empty payload",
			parts: [][]byte{[]byte("IEND")},
			want:  0xAE426082,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Checksum(tc.parts...); got != tc.want {
				t.Errorf("Checksum mismatch: got 0x%08X, want 0x%08X", got, tc.want)
			}
		})
	}
}

func TestChecksum_MultiPartMatchesConcatenated(t *testing.T) {
	typeTag := []byte("tEXt")
	payload := []byte("Comment\x00made with png-util")

	joined := append(append([]byte{}, typeTag...), payload...)
	if got, want := Checksum(typeTag, payload), crc32.ChecksumIEEE(joined); got != want {
		t.Errorf("split checksum 0x%08X does not match joined checksum 0x%08X", got, want)
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	data := []byte("IDATsome payload bytes")

	first := Checksum(data)
	second := Checksum(data)
	if first != second {
		t.Errorf("checksum is not deterministic: 0x%08X vs 0x%08X", first, second)
	}
}

func TestChecksum_SingleByteChange(t *testing.T) {
	data := []byte("IDATsome payload bytes")
	base := Checksum(data)

	for i := range data {
		mutated := append([]byte{}, data...)
		mutated[i] ^= 0x01
		if Checksum(mutated) == base {
			t.Errorf("flipping bit in byte %d did not change the checksum", i)
		}
	}
}
