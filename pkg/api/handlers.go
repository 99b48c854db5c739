package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Nordgaren/png-util/pkg/chunk"
	"github.com/Nordgaren/png-util/pkg/png"
)

// Server holds the API server state
type Server struct {
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleInspect scans an uploaded file and returns its chunk listing. The
// body is the raw file bytes.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	buf, ok := s.readBody(w, r)
	if !ok {
		return
	}

	views, err := png.Parse(buf)
	if err != nil {
		s.metrics.RecordScan("inspect", errorKind(err), 0, time.Since(start))
		sendError(w, fmt.Sprintf("scan failed: %v", err), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.RecordScan("inspect", "", len(views), time.Since(start))

	resp := InspectResponse{
		FileSize:   len(buf),
		ChunkCount: len(views),
		Chunks:     make([]ChunkInfo, 0, len(views)),
	}
	for _, v := range views {
		resp.Chunks = append(resp.Chunks, chunkInfo(v))
	}
	if hdr, err := chunk.ParseIHDR(views[0].Payload); err == nil {
		resp.Header = &HeaderInfo{
			Width:       hdr.Width,
			Height:      hdr.Height,
			BitDepth:    hdr.BitDepth,
			ColorType:   hdr.ColorType,
			Compression: hdr.Compression,
			Filter:      hdr.Filter,
			Interlace:   hdr.Interlace,
		}
	}
	sendSuccess(w, resp)
}

// handleValidate scans an uploaded file and reports a verdict instead of a
// listing. Structural and integrity failures are part of the verdict, not
// HTTP errors.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	buf, ok := s.readBody(w, r)
	if !ok {
		return
	}

	views, err := png.Parse(buf)
	if err != nil {
		s.metrics.RecordScan("validate", errorKind(err), 0, time.Since(start))
		sendSuccess(w, ValidateResponse{
			Valid:     false,
			ErrorKind: errorKind(err),
			Detail:    err.Error(),
		})
		return
	}
	s.metrics.RecordScan("validate", "", len(views), time.Since(start))
	sendSuccess(w, ValidateResponse{Valid: true, ChunkCount: len(views)})
}

// handleStrip re-serializes an uploaded file with the ancillary chunk types
// named in the types query parameter removed, and returns the new file.
func (s *Server) handleStrip(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var drop []chunk.ChunkType
	for _, tag := range strings.Split(r.URL.Query().Get("types"), ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		typ, err := chunk.ParseChunkType(tag)
		if err != nil {
			sendError(w, fmt.Sprintf("bad types parameter: %v", err), http.StatusBadRequest)
			return
		}
		if typ.Critical() {
			sendError(w, fmt.Sprintf("refusing to strip critical chunk type %s", typ), http.StatusBadRequest)
			return
		}
		drop = append(drop, typ)
	}
	if len(drop) == 0 {
		sendError(w, "types parameter is required", http.StatusBadRequest)
		return
	}

	buf, ok := s.readBody(w, r)
	if !ok {
		return
	}

	views, err := png.Parse(buf)
	if err != nil {
		s.metrics.RecordScan("strip", errorKind(err), 0, time.Since(start))
		sendError(w, fmt.Sprintf("scan failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	builder := png.BuilderFromChunks(views)
	// Walk backwards so removals do not renumber the entries still to visit.
	for i := len(views) - 1; i >= 0; i-- {
		for _, typ := range drop {
			if views[i].Type == typ {
				if err := builder.Remove(i); err != nil {
					sendError(w, fmt.Sprintf("strip failed: %v", err), http.StatusInternalServerError)
					return
				}
				break
			}
		}
	}

	out, err := builder.Finalize()
	if err != nil {
		sendError(w, fmt.Sprintf("serialize failed: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordScan("strip", "", len(views), time.Since(start))

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// readBody reads the request body up to the configured size cap. A false
// return means the response has already been written.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	limit := s.config.MaxFileSize
	if limit <= 0 {
		limit = 64 << 20
	}
	buf, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, fmt.Sprintf("file exceeds %d byte limit", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		} else {
			sendError(w, "failed to read request body", http.StatusBadRequest)
		}
		return nil, false
	}
	return buf, true
}

func crcHex(crc uint32) string {
	return fmt.Sprintf("%08X", crc)
}

// errorKind maps the scanner's typed errors to the stable kind names used in
// responses and metric labels.
func errorKind(err error) string {
	switch {
	case errors.Is(err, png.ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, png.ErrTruncatedChunk):
		return "truncated_chunk"
	case errors.Is(err, chunk.ErrInvalidChunkType):
		return "invalid_chunk_type"
	case errors.Is(err, chunk.ErrChunkTooLarge):
		return "chunk_too_large"
	case errors.Is(err, png.ErrChecksumMismatch):
		return "checksum_mismatch"
	case errors.Is(err, png.ErrMissingHeader):
		return "missing_header"
	case errors.Is(err, png.ErrMissingTerminator):
		return "missing_terminator"
	case errors.Is(err, png.ErrTrailingData):
		return "trailing_data"
	default:
		return "unknown"
	}
}
