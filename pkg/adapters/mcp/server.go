package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/powerset"
	"github.com/aretw0/powerset/internal/presentation/graph"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/parser"
	"github.com/aretw0/powerset/pkg/schema"
	"github.com/aretw0/powerset/pkg/subset"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ConvertArgs are the arguments of the convert_nfa tool.
type ConvertArgs struct {
	Source  string `json:"source,omitempty"`
	Catalog string `json:"catalog,omitempty"`
	Total   bool   `json:"total,omitempty"`
}

// ConvertResult is the structured output of convert_nfa.
type ConvertResult struct {
	DFA     *schema.Definition  `json:"dfa" jsonschema_description:"The constructed DFA; state names are NFA subsets"`
	Subsets map[string][]string `json:"subsets" jsonschema_description:"NFA states each DFA state stands for"`
	Text    string              `json:"text" jsonschema_description:"The DFA in the sectioned text format"`
	Mermaid string              `json:"mermaid" jsonschema_description:"Mermaid flowchart of the DFA"`
}

// ClosureArgs are the arguments of the closure tool.
type ClosureArgs struct {
	Source  string `json:"source,omitempty"`
	Catalog string `json:"catalog,omitempty"`
	States  string `json:"states"`
}

// ClosureResult is the structured output of closure.
type ClosureResult struct {
	Input   []string `json:"input" jsonschema_description:"The requested states"`
	Closure []string `json:"closure" jsonschema_description:"Every state reachable through epsilon transitions, sorted"`
}

// Server exposes the converter as an MCP Server.
type Server struct {
	converter *powerset.Converter
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(conv *powerset.Converter, logger *slog.Logger) *Server {
	s := &Server{
		converter: conv,
		mcpServer: server.NewMCPServer("powerset-mcp", strings.TrimSpace(powerset.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: convert_nfa
	convertTool := mcp.NewTool("convert_nfa",
		mcp.WithDescription("Convert an NFA (epsilon transitions allowed) into an equivalent DFA by subset construction. Provide either the automaton source or a catalog name."),
		mcp.WithString("source", mcp.Description("Automaton in the text format: States:, Alphabet:, Start:, Accept: lines and a Transitions: section of 'src,sym->dst1,dst2' lines (empty sym = epsilon)")),
		mcp.WithString("catalog", mcp.Description("Name of a catalog entry to convert instead of source")),
		mcp.WithBoolean("total", mcp.Description("Add an explicit dead state so every (state, symbol) has a transition")),
		mcp.WithOutputSchema[ConvertResult](),
	)
	s.mcpServer.AddTool(convertTool, mcp.NewStructuredToolHandler(s.handleConvert))

	// TOOL: closure
	closureTool := mcp.NewTool("closure",
		mcp.WithDescription("Compute the epsilon-closure of a set of NFA states."),
		mcp.WithString("states", mcp.Required(), mcp.Description("Comma-separated state names")),
		mcp.WithString("source", mcp.Description("Automaton in the text format")),
		mcp.WithString("catalog", mcp.Description("Name of a catalog entry to use instead of source")),
		mcp.WithOutputSchema[ClosureResult](),
	)
	s.mcpServer.AddTool(closureTool, mcp.NewStructuredToolHandler(s.handleClosure))

	// TOOL: list_catalog
	s.mcpServer.AddTool(mcp.NewTool("list_catalog",
		mcp.WithDescription("List the names of the automata in the catalog."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.catalogNames(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return mcp.NewToolResultText(strings.Join(names, "\n")), nil
	})
}

func (s *Server) registerResources() {
	// EXPOSE: powerset://catalog
	s.mcpServer.AddResource(mcp.NewResource("powerset://catalog", "Automaton Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.catalogNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list catalog: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "powerset://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args ConvertArgs) (ConvertResult, error) {
	nfa, name, err := s.resolve(ctx, args.Source, args.Catalog)
	if err != nil {
		return ConvertResult{}, err
	}

	opts := s.converter.Options()
	opts = append(opts, subset.WithTrace(false))
	if args.Total {
		opts = append(opts, subset.WithTotal(true))
	}

	res, err := subset.Construct(ctx, nfa, opts...)
	if err != nil {
		return ConvertResult{}, fmt.Errorf("conversion failed: %w", err)
	}

	def := schema.FromAutomaton(name, res.DFA)
	subsets := make(map[string][]string)
	for _, id := range res.DFA.States() {
		if set, ok := res.DFA.Subset(id); ok {
			members := make([]string, 0, set.Len())
			for _, m := range set.IDs() {
				members = append(members, string(m))
			}
			subsets[string(id)] = members
		}
	}

	s.logger.Info("convert_nfa", "name", name, "dfa_states", len(def.States))
	return ConvertResult{
		DFA:     def,
		Subsets: subsets,
		Text:    parser.FormatString(def),
		Mermaid: graph.GenerateMermaid(res.DFA, nil),
	}, nil
}

func (s *Server) handleClosure(ctx context.Context, request mcp.CallToolRequest, args ClosureArgs) (ClosureResult, error) {
	nfa, _, err := s.resolve(ctx, args.Source, args.Catalog)
	if err != nil {
		return ClosureResult{}, err
	}

	var ids []domain.StateID
	var input []string
	for _, part := range strings.Split(args.States, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if !nfa.HasState(domain.StateID(id)) {
			return ClosureResult{}, fmt.Errorf("unknown state %q", id)
		}
		ids = append(ids, domain.StateID(id))
		input = append(input, id)
	}
	if len(ids) == 0 {
		return ClosureResult{}, errors.New("at least one state is required")
	}

	closure := subset.Closure(nfa, domain.NewStateSet(ids...))
	out := make([]string, 0, closure.Len())
	for _, id := range closure.IDs() {
		out = append(out, string(id))
	}
	return ClosureResult{Input: input, Closure: out}, nil
}

// resolve builds the automaton from inline source or a catalog entry.
func (s *Server) resolve(ctx context.Context, source, name string) (*domain.Automaton, string, error) {
	var def *schema.Definition
	switch {
	case source != "" && name != "":
		return nil, "", errors.New("provide either source or catalog, not both")
	case source != "":
		parsed, err := parser.New().ParseBytes([]byte(source))
		if err != nil {
			return nil, "", fmt.Errorf("invalid source: %w", err)
		}
		def = parsed
	case name != "":
		catalog := s.converter.Catalog()
		if catalog == nil {
			return nil, "", powerset.ErrNoCatalog
		}
		loaded, err := catalog.Get(ctx, name)
		if err != nil {
			return nil, "", err
		}
		def = loaded
	default:
		return nil, "", errors.New("either source or catalog is required")
	}

	nfa, err := def.ToAutomaton()
	if err != nil {
		return nil, "", err
	}
	return nfa, def.Name, nil
}

func (s *Server) catalogNames(ctx context.Context) ([]string, error) {
	catalog := s.converter.Catalog()
	if catalog == nil {
		return []string{}, nil
	}
	return catalog.List(ctx)
}
