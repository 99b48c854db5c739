package api

import (
	"github.com/Nordgaren/png-util/pkg/chunk"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind        string
	Port        int
	APIKey      string
	MaxFileSize int64 // request body cap, in bytes
}

// ChunkInfo is the JSON shape of one chunk in an inspect response.
type ChunkInfo struct {
	Index      int    `json:"index"`
	Type       string `json:"type"`
	Length     int    `json:"length"`
	CRC        string `json:"crc"` // stored checksum, 8 hex digits
	Offset     int64  `json:"offset"`
	Ancillary  bool   `json:"ancillary"`
	Private    bool   `json:"private"`
	SafeToCopy bool   `json:"safe_to_copy"`
}

// HeaderInfo carries the decoded IHDR fields when the file has them.
type HeaderInfo struct {
	Width       uint32 `json:"width"`
	Height      uint32 `json:"height"`
	BitDepth    uint8  `json:"bit_depth"`
	ColorType   uint8  `json:"color_type"`
	Compression uint8  `json:"compression"`
	Filter      uint8  `json:"filter"`
	Interlace   uint8  `json:"interlace"`
}

// InspectResponse is the payload of POST /api/v1/inspect.
type InspectResponse struct {
	FileSize   int         `json:"file_size"`
	ChunkCount int         `json:"chunk_count"`
	Chunks     []ChunkInfo `json:"chunks"`
	Header     *HeaderInfo `json:"header,omitempty"`
}

// ValidateResponse is the payload of POST /api/v1/validate.
type ValidateResponse struct {
	Valid      bool   `json:"valid"`
	ChunkCount int    `json:"chunk_count,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

func chunkInfo(v chunk.ChunkView) ChunkInfo {
	return ChunkInfo{
		Index:      v.Index,
		Type:       v.Type.String(),
		Length:     v.Length(),
		CRC:        crcHex(v.StoredCRC),
		Offset:     v.Offset,
		Ancillary:  v.Type.Ancillary(),
		Private:    v.Type.Private(),
		SafeToCopy: v.Type.SafeToCopy(),
	}
}
