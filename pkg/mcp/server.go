package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/vscroll/pkg/replay"
	"github.com/macropower/vscroll/pkg/version"
)

const tracerName = "github.com/macropower/vscroll/pkg/mcp"

// ServerOpt configures a [Server].
type ServerOpt func(*Server)

// WithTracerProvider sets the tracer provider of tool calls and replays.
// Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) ServerOpt {
	return func(s *Server) {
		s.tp = tp
	}
}

// Server implements the MCP server for vscroll.
type Server struct {
	tp       trace.TracerProvider
	server   *mcp.Server
	replayer *replay.Replayer
	address  string
}

// NewServer creates a new MCP server. An empty address serves over stdio,
// any other address serves streamable HTTP.
func NewServer(address string, opts ...ServerOpt) *Server {
	s := &Server{address: address}
	for _, opt := range opts {
		opt(s)
	}

	if s.tp == nil {
		s.tp = otel.GetTracerProvider()
	}

	s.replayer = replay.New(replay.WithTracerProvider(s.tp))
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version.GetVersion(),
	}, &mcp.ServerOptions{
		Instructions: instructions,
	})

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	tracer := s.tp.Tracer(tracerName)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_window",
		Description: "Compute the rendered window of one virtual scrolling axis for a scroll offset.",
		InputSchema: newComputeWindowSchema(),
	}, WithTracing(tracer, s.handleComputeWindow))

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "replay_trace",
		Description: "Replay a ScrollTrace YAML document against a headless grid. " +
			"Returns the rendered windows and the outcome of each step.",
		InputSchema: newReplayTraceSchema(),
	}, WithTracing(tracer, s.handleReplayTrace))
}

func (s *Server) Server() *mcp.Server {
	return s.server
}

// Serve starts the MCP server and blocks until ctx is done or the server
// fails.
func (s *Server) Serve(ctx context.Context) error {
	slog.InfoContext(ctx, "starting MCP server", slog.String("address", s.address))

	if s.address == "" {
		err := s.serveStdio(ctx)
		if err != nil {
			return fmt.Errorf("serve stdio: %w", err)
		}

		return nil
	}

	err := s.serveHTTP(ctx)
	if err != nil {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	return nil
}

func (s *Server) serveHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	server := &http.Server{
		Addr:    s.address,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := server.Shutdown(shutdownCtx) //nolint:contextcheck // The parent context is done.
		if err != nil {
			slog.Error("shut down MCP server", slog.Any("error", err))
		}
	}()

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func (s *Server) serveStdio(ctx context.Context) error {
	t := mcp.NewLoggingTransport(mcp.NewStdioTransport(), os.Stderr)

	err := s.server.Run(ctx, t)
	if err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}
