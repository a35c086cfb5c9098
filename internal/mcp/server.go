package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alucardeht/bareos-mcp/internal/tools"
	"github.com/alucardeht/bareos-mcp/pkg/protocol"
)

// Server answers one request per input line, strictly in order: a line
// is fully handled and its response flushed before the next is read.
type Server struct {
	handler *Handler
	log     *slog.Logger
}

func NewServer(registry *tools.Registry, log *slog.Logger) *Server {
	return &Server{
		handler: NewHandler(registry, log),
		log:     log,
	}
}

func (s *Server) HandleRequest(ctx context.Context, req *Request) *Response {
	return s.handler.Handle(ctx, req)
}

// ProcessStream announces the server with an id-less initialize result,
// then serves until reader hits EOF (nil) or fails (the read error).
// Lines that are not JSON are logged and get no response.
func (s *Server) ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) error {
	in := bufio.NewReader(reader)
	out := bufio.NewWriter(writer)
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)

	send := func(resp *Response) error {
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("failed to flush response: %w", err)
		}
		if resp.Error != nil {
			s.log.Debug("→ error", "id", string(resp.ID), "code", resp.Error.Code, "message", resp.Error.Message)
		} else {
			s.log.Debug("→ result", "id", string(resp.ID))
		}
		return nil
	}

	if err := send(&Response{JSONRPC: protocol.Version, Result: initializeResult()}); err != nil {
		return err
	}

	for {
		line, readErr := in.ReadBytes('\n')

		if line = bytes.TrimSpace(line); len(line) > 0 {
			req, err := protocol.ParseRequest(line)
			if err != nil {
				s.log.Error("failed to parse request", "error", err)
			} else {
				s.log.Debug("← request", "method", req.Method, "id", string(req.ID))
				if err := send(s.HandleRequest(ctx, req)); err != nil {
					return err
				}
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}
