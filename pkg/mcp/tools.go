package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/tokengen/pkg/preset"
)

func listTokensTool() mcp.Tool {
	return mcp.NewTool("list_tokens",
		mcp.WithDescription("List the CSS custom properties generated for one theme mode, in stylesheet order."),
		mcp.WithString("mode",
			mcp.Description("Theme mode to list (default: light)"),
			mcp.Enum("light", "dark"),
		),
		mcp.WithString("prefix",
			mcp.Description("Only return tokens whose name starts with this prefix, e.g. \"sidebar\" or \"chart-\""),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func getTokenTool() mcp.Tool {
	return mcp.NewTool("get_token",
		mcp.WithDescription("Get the value of one token in each theme mode. Accepts \"--primary-foreground\" or \"primary-foreground\"."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Token name, with or without the leading --"),
		),
		mcp.WithString("mode",
			mcp.Description("Restrict the lookup to one mode"),
			mcp.Enum("light", "dark"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func getStylesheetTool() mcp.Tool {
	return mcp.NewTool("get_stylesheet",
		mcp.WithDescription("Return the generated design-tokens.css text for the current design.json."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func getPresetTool() mcp.Tool {
	return mcp.NewTool("get_preset",
		mcp.WithDescription("Return the generated Tailwind preset module for the current design.json."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func getScaleTool() mcp.Tool {
	return mcp.NewTool("get_scale",
		mcp.WithDescription("Return one Tailwind theme.extend scale (typography, spacing, radius or shadows) as JSON."),
		mcp.WithString("group",
			mcp.Required(),
			mcp.Description("Scale name"),
			mcp.Enum(preset.GroupNames...),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}
