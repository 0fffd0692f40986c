package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	jsvlog "github.com/gopatchy/jsv/pkg/log"
	"github.com/gopatchy/jsv/pkg/metrics"
	"github.com/gopatchy/jsv/pkg/version"
)

type options struct {
	MetricsAddr string `short:"m" long:"metrics-addr" description:"serve Prometheus metrics on this address, e.g. :9090"`
	Verbose     bool   `short:"v" long:"verbose" description:"enable verbose logging"`
	Version     bool   `short:"V" long:"version" description:"print version and exit"`
}

// Server holds state shared by every tool call.
type Server struct {
	metrics *metrics.Observer
}

func main() {
	opts := &options{}

	_, err := flags.NewParser(opts, flags.Default).Parse()
	if err != nil {
		os.Exit(1)
	}

	version.PrintVersion(opts.Version)

	if opts.Verbose {
		jsvlog.Debug = true
	}

	s := &Server{metrics: metrics.New(nil)}

	if opts.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", s.metrics.Handler())

			err := http.ListenAndServe(opts.MetricsAddr, mux)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				jsvlog.Warnf("metrics server: %v", err)
			}
		}()
	}

	if err := server.ServeStdio(s.newMCPServer()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func (s *Server) newMCPServer() *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"jsv-mcp",
		version.Version(),
		server.WithToolCapabilities(false),
	)

	validateTool := mcp.NewTool("validate",
		mcp.WithDescription("Validate a document against a schema and report every violation"),
		mcp.WithObject("schema",
			mcp.Description("Schema as an object; or pass schemaText"),
		),
		mcp.WithString("schemaText",
			mcp.Description("Schema as text in the given format"),
		),
		mcp.WithObject("data",
			mcp.Description("Document to validate as an object; or pass dataText"),
		),
		mcp.WithString("dataText",
			mcp.Description("Document as text in the given format"),
		),
		mcp.WithString("format",
			mcp.Description("Format of schemaText and dataText (json, yaml, toml, properties); default json"),
		),
		mcp.WithObject("schemas",
			mcp.Description("Additional schemas by id, for $ref"),
		),
		mcp.WithObject("options",
			mcp.Description("Validator options by name, e.g. {\"cast\": true, \"additionalProperties\": false}"),
		),
	)
	mcpServer.AddTool(validateTool, s.validateHandler)

	listTool := mcp.NewTool("list",
		mcp.WithDescription("List built-in formats, format extensions, filters and option names"),
	)
	mcpServer.AddTool(listTool, s.listHandler)

	versionTool := mcp.NewTool("version",
		mcp.WithDescription("Get jsv build information"),
	)
	mcpServer.AddTool(versionTool, s.versionHandler)

	return mcpServer
}
