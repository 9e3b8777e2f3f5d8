package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchExcerptsTool defines the search_excerpts MCP tool.
var searchExcerptsTool = mcp.NewTool("search_excerpts",
	mcp.WithDescription("Search transmissions by a case-insensitive substring of their content or source."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Text to look for; empty returns every transmission"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// askOracleTool defines the ask_oracle MCP tool.
var askOracleTool = mcp.NewTool("ask_oracle",
	mcp.WithDescription("Ask the oracle a question. Returns the transmission sharing the most keywords with it."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("Free-text question"),
	),
)

// civilizationTransmissionsTool defines the civilization_transmissions MCP tool.
var civilizationTransmissionsTool = mcp.NewTool("civilization_transmissions",
	mcp.WithDescription("List the transmissions associated with a civilization from the directory."),
	mcp.WithString("civilization_id",
		mcp.Required(),
		mcp.Description("Civilization id, for example pleiadians or ra"),
	),
)

// topicTransmissionsTool defines the topic_transmissions MCP tool.
var topicTransmissionsTool = mcp.NewTool("topic_transmissions",
	mcp.WithDescription("Preview up to five transmissions for a cross-cutting topic."),
	mcp.WithString("topic_id",
		mcp.Required(),
		mcp.Description("Topic id, for example ascension or inner-earth"),
	),
)

// timelineTool defines the timeline MCP tool.
var timelineTool = mcp.NewTool("timeline",
	mcp.WithDescription("List transmissions in chronological order, optionally for one year."),
	mcp.WithString("order",
		mcp.Description("Sort order (default desc)"),
		mcp.Enum("asc", "desc"),
	),
	mcp.WithString("year",
		mcp.Description("Four-digit year, or All"),
	),
)
