package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/tokengen/pkg/design"
	"github.com/gnana997/tokengen/pkg/flatten"
	"github.com/gnana997/tokengen/pkg/generator"
	"github.com/gnana997/tokengen/pkg/preset"
)

type tokenList struct {
	Mode   string                `json:"mode"`
	Count  int                   `json:"count"`
	Tokens []flatten.Declaration `json:"tokens"`
}

type modeValue struct {
	Mode  string `json:"mode"`
	Value string `json:"value"`
}

type tokenValues struct {
	Name   string      `json:"name"`
	Values []modeValue `json:"values"`
}

func (s *Server) compile(ctx context.Context) (*generator.Artifacts, *mcp.CallToolResult) {
	a, err := s.gen.Compile(ctx)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return a, nil
}

// declarations flattens one mode with the generator's naming options.
func (s *Server) declarations(doc *design.Document, mode string) ([]flatten.Declaration, bool) {
	tree, ok := doc.Mode(mode)
	if !ok {
		return nil, false
	}
	return flatten.FlattenWith(tree, "", s.gen.Config().Flatten), true
}

func (s *Server) handleListTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, errResult := s.compile(ctx)
	if errResult != nil {
		return errResult, nil
	}

	mode := req.GetString("mode", design.ModeLight)
	decls, ok := s.declarations(a.Document, mode)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("mode %q not found in colors (available: %s)",
			mode, strings.Join(a.Document.Modes(), ", "))), nil
	}

	prefix := strings.TrimPrefix(req.GetString("prefix", ""), "--")
	tokens := make([]flatten.Declaration, 0, len(decls))
	for _, d := range decls {
		if strings.HasPrefix(d.Name, prefix) {
			tokens = append(tokens, d)
		}
	}

	return jsonResult(tokenList{Mode: mode, Count: len(tokens), Tokens: tokens})
}

func (s *Server) handleGetToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name = strings.TrimPrefix(strings.TrimSpace(name), "--")

	a, errResult := s.compile(ctx)
	if errResult != nil {
		return errResult, nil
	}

	modes := a.Document.Modes()
	if m := req.GetString("mode", ""); m != "" {
		modes = []string{m}
	}

	out := tokenValues{Name: name, Values: []modeValue{}}
	for _, mode := range modes {
		decls, ok := s.declarations(a.Document, mode)
		if !ok {
			continue
		}
		// Later declarations win in CSS, so report the last match.
		for i := len(decls) - 1; i >= 0; i-- {
			if decls[i].Name == name {
				out.Values = append(out.Values, modeValue{Mode: mode, Value: decls[i].Value})
				break
			}
		}
	}
	if len(out.Values) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("token --%s not found", name)), nil
	}
	return jsonResult(out)
}

func (s *Server) handleGetStylesheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, errResult := s.compile(ctx)
	if errResult != nil {
		return errResult, nil
	}
	if a.StylesheetErr != nil {
		return mcp.NewToolResultError(a.StylesheetErr.Error()), nil
	}
	return mcp.NewToolResultText(string(a.Stylesheet)), nil
}

func (s *Server) handleGetPreset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, errResult := s.compile(ctx)
	if errResult != nil {
		return errResult, nil
	}
	if a.PresetErr != nil {
		return mcp.NewToolResultError(a.PresetErr.Error()), nil
	}
	return mcp.NewToolResultText(string(a.Preset)), nil
}

func (s *Server) handleGetScale(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group, err := req.RequireString("group")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	a, errResult := s.compile(ctx)
	if errResult != nil {
		return errResult, nil
	}

	known := false
	for _, g := range preset.GroupNames {
		known = known || g == group
	}
	if !known {
		return mcp.NewToolResultError(fmt.Sprintf("unknown group %q (expected one of: %s)",
			group, strings.Join(preset.GroupNames, ", "))), nil
	}

	p, err := preset.Assemble(a.Document)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, ok := p.Group(group)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s is not defined in design.json", group)), nil
	}

	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", group, err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("indent %s: %w", group, err)
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
