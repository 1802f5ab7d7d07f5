package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/setforge/internal/export"
	"github.com/claude/setforge/internal/models"
)

// --- Tool definitions ---

var toolMatchExercises = mcp.NewTool("match_exercises",
	mcp.WithDescription("Match free-form exercise names against the canonical catalog. Returns one result per name with confidence, status (valid, needs_review, unmapped), and ranked candidates."),
	mcp.WithString("names", mcp.Required(), mcp.Description("Exercise names to match, one per line or comma-separated")),
)

var toolSuggestAlternatives = mcp.NewTool("suggest_alternatives",
	mcp.WithDescription("Suggest canonical alternatives for a single exercise name: top similarity candidates plus same-category exercises."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name to look up")),
)

var toolExportWorkout = mcp.NewTool("export_workout",
	mcp.WithDescription("Convert a workout JSON document into a device-ready export. Targets: schedule (Garmin-Planner YAML), wearable (interval JSON DTO), xml (ZWO-style interval file)."),
	mcp.WithString("workout", mcp.Required(), mcp.Description("Workout document as JSON: title, blocks with exercises and supersets")),
	mcp.WithString("target", mcp.Description("Export target. Defaults to 'wearable'."), mcp.Enum("schedule", "wearable", "xml")),
)

var toolListCatalog = mcp.NewTool("list_catalog",
	mcp.WithDescription("List the canonical exercise catalog, optionally filtered by category keyword."),
	mcp.WithString("category", mcp.Description("Category keyword filter (e.g. 'squat', 'press')")),
)

// --- Tool handlers ---

func (h *handlers) matchExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("names")
	if err != nil {
		return mcp.NewToolResultError("names parameter is required"), nil
	}

	names := splitNames(raw)
	if len(names) == 0 {
		return mcp.NewToolResultError("no exercise names given"), nil
	}

	results := h.pipe.NormalizeAndMatch(ctx, names)
	out, err := mcp.NewToolResultJSON(map[string]any{"results": results})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) suggestAlternatives(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	results := h.pipe.NormalizeAndMatch(ctx, []string{name})
	res := results[0]

	out, err := mcp.NewToolResultJSON(map[string]any{
		"name":       res.OriginalName,
		"normalized": res.NormalizedName,
		"mapped_to":  res.MappedTo,
		"status":     res.Status,
		"candidates": res.Candidates,
		"by_type":    res.ByType,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

func (h *handlers) exportWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutJSON, err := req.RequireString("workout")
	if err != nil {
		return mcp.NewToolResultError("workout parameter is required"), nil
	}

	var workout models.Workout
	if err := json.Unmarshal([]byte(workoutJSON), &workout); err != nil {
		return mcp.NewToolResultError("invalid workout JSON: " + err.Error()), nil
	}

	target, err := export.ParseTarget(req.GetString("target", "wearable"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rendered, err := h.pipe.Export(ctx, workout, target)
	if err != nil {
		h.log.Error("mcp export_workout", "target", target, "error", err)
		return mcp.NewToolResultError("export failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(rendered)), nil
}

func (h *handlers) listCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")

	entries := h.index.Entries()
	if category != "" {
		entries = h.index.ByCategory(category)
	}

	out, err := mcp.NewToolResultJSON(map[string]any{"entries": entries})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}

// splitNames accepts newline or comma separated name lists.
func splitNames(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})
	var names []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	return names
}
