// Package serve implements an NDJSON request/response server over an
// io.Reader and io.Writer pair, normally the stdin and stdout of a subprocess
// hosted by another runtime. Each request is one JSON object per line and
// produces exactly one response line; a ready line announcing the protocol
// version is written before any request is read.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/ownerlint/ownerlint/pkg/parse"
	"github.com/ownerlint/ownerlint/pkg/types"
)

// Version is the server protocol version
const Version = "1.0.0"

// ValidateFunc runs one validation request. The server stays pure transport;
// callers supply the engine behind it.
type ValidateFunc func(ctx context.Context, p ValidatePayload) (map[string][]types.Issue, error)

// Server manages the streaming validator
type Server struct {
	validate ValidateFunc
	encoder  *json.Encoder
	decoder  *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(validate ValidateFunc, in io.Reader, out io.Writer) *Server {
	return &Server{
		validate: validate,
		encoder:  json.NewEncoder(out),
		decoder:  json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(ctx, req) {
						return nil
					}
				default:
					// No more pending requests
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(ctx, req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(ctx context.Context, req Request) bool {
	switch req.Type {
	case "validate":
		s.handleValidate(ctx, req.Payload)
	case "parse":
		s.handleParse(req.Payload)
	case "version":
		s.handleVersion()
	case "shutdown":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) handleValidate(ctx context.Context, payload json.RawMessage) {
	var p ValidatePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("validate", err.Error())
		return
	}

	result, err := s.validate(ctx, p)
	if err != nil {
		s.sendError("validate", err.Error())
		return
	}

	data, _ := json.Marshal(result)
	s.encoder.Encode(Response{
		Success: true,
		Type:    "validate",
		Data:    data,
	})
}

func (s *Server) handleParse(payload json.RawMessage) {
	var p ParsePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("parse", err.Error())
		return
	}

	doc, errs := parse.Parse(p.Content)
	if errs == nil {
		errs = []string{}
	}
	lines := doc.Lines
	if lines == nil {
		lines = []types.Line{}
	}

	data, _ := json.Marshal(ParseData{Lines: lines, Errors: errs})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "parse",
		Data:    data,
	})
}

func (s *Server) handleVersion() {
	data, _ := json.Marshal(VersionData{Version: Version})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "version",
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
