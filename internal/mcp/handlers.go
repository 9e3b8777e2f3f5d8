package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/akasha/internal/lookup"
	"github.com/ziadkadry99/akasha/internal/lore"
)

// handleSearchExcerpts runs a substring search over every transmission.
func (s *Server) handleSearchExcerpts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	results := lookup.Search(s.lib.Excerpts(), query)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No transmissions mention %q.", query)), nil
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return mcp.NewToolResultText(formatExcerpts(results)), nil
}

// handleAskOracle answers a question with the best-matching transmission.
func (s *Server) handleAskOracle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	resp := s.responder.Respond(question)

	var sb strings.Builder
	sb.WriteString(resp.Text)
	if resp.Excerpt != nil {
		fmt.Fprintf(&sb, "\n\n-- %s (%s)", resp.Excerpt.Source, lookup.FormatDate(resp.Excerpt.Date))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleCivilizationTransmissions lists excerpts matched to a civilization.
func (s *Server) handleCivilizationTransmissions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("civilization_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: civilization_id"), nil
	}

	civ, ok := s.lib.Civilization(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown civilization %q", id)), nil
	}

	results := lookup.ForCivilization(s.lib.Excerpts(), civ)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No transmissions from %s are archived.", civ.Name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (%s, %s)\n", civ.Name, civ.System, civ.Density) + formatExcerpts(results)), nil
}

// handleTopicTransmissions previews excerpts for a topic.
func (s *Server) handleTopicTransmissions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("topic_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: topic_id"), nil
	}

	topic, ok := s.lib.Topic(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown topic %q", id)), nil
	}

	results := lookup.ForTopic(s.lib.Excerpts(), topic)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No transmissions touch on %s yet.", topic.Name)), nil
	}
	return mcp.NewToolResultText(topic.Name + "\n" + formatExcerpts(results)), nil
}

// handleTimeline lists excerpts by date.
func (s *Server) handleTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	order := request.GetString("order", "desc")
	if order != "asc" && order != "desc" {
		return mcp.NewToolResultError("order must be asc or desc"), nil
	}

	view := lookup.Timeline(s.lib.Excerpts(), order == "asc", request.GetString("year", lookup.AllYears))
	if len(view.Entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No transmissions recorded for %s.", view.Year)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Years: %s\n", strings.Join(view.Years, ", "))
	for _, e := range view.Entries {
		fmt.Fprintf(&sb, "\n[%s] %s (%s)\n%s\n", e.FormattedDate, e.Source, e.SphereTitle, e.Content)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatExcerpts renders excerpts as plain text for agent consumption.
func formatExcerpts(excerpts []lore.Excerpt) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d transmission(s):\n", len(excerpts)))

	for i, e := range excerpts {
		sb.WriteString(fmt.Sprintf("\n--- Transmission %d ---\n", i+1))
		if e.ID != "" {
			sb.WriteString(fmt.Sprintf("ID: %s\n", e.ID))
		}
		if e.Source != "" {
			sb.WriteString(fmt.Sprintf("Source: %s\n", e.Source))
		}
		sb.WriteString(fmt.Sprintf("Date: %s\n", lookup.FormatDate(e.Date)))
		if e.SphereTitle != "" {
			sb.WriteString(fmt.Sprintf("Sphere: %s\n", e.SphereTitle))
		}
		sb.WriteString("\n")
		sb.WriteString(e.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}
