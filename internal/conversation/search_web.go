package conversation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sashabaranov/go-openai/jsonschema"

	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/websearch"
)

const searchWebToolName = "search_web"

// noUsefulResults is sent to the model when every web result was a placeholder.
const noUsefulResults = "The web search did not return any useful results. Answer with the information you already have and tell the user that no current information could be found on the web."

var searchWebTool = llm.Tool{
	Name:        searchWebToolName,
	Description: "Search the web for current or external information that is not contained in the user's documents.",
	Parameters: jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"query": {
				Type:        jsonschema.String,
				Description: "The search query to run.",
			},
		},
		Required: []string{"query"},
	},
}

type searchWebArgs struct {
	Query string `json:"query" validate:"required"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// parseSearchWebArgs decodes and validates the accumulated argument JSON.
func parseSearchWebArgs(raw string) (*searchWebArgs, error) {
	var args searchWebArgs
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("%w: arguments are not valid JSON: %s", app_errors.ErrValidation, err.Error())
	}
	args.Query = strings.TrimSpace(args.Query)

	if err := getValidator().Struct(&args); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return nil, fmt.Errorf("%w: field '%s' failed on the '%s' tag",
				app_errors.ErrValidation, validationErrors[0].Field(), validationErrors[0].Tag())
		}
		return nil, fmt.Errorf("%w: %s", app_errors.ErrValidation, err.Error())
	}
	return &args, nil
}

var placeholderSnippetMarkers = []string{"failed", "unable to", "no results", "not available", "not configured"}

// usefulResults drops placeholder and error entries returned by the searcher.
func usefulResults(results []websearch.Result) []websearch.Result {
	out := make([]websearch.Result, 0, len(results))
	for _, r := range results {
		title := strings.TrimSpace(r.Title)
		if title == "" || strings.EqualFold(title, websearch.NoResultsTitle) || strings.EqualFold(title, websearch.ErrorTitle) {
			continue
		}
		snippet := strings.ToLower(r.Snippet)
		placeholder := false
		for _, marker := range placeholderSnippetMarkers {
			if strings.Contains(snippet, marker) {
				placeholder = true
				break
			}
		}
		if !placeholder {
			out = append(out, r)
		}
	}
	return out
}

// formatResults renders up to limit results as a numbered list.
func formatResults(query string, results []websearch.Result, limit int) string {
	if len(results) == 0 {
		return noUsefulResults
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Web search results for %q:\n", query)
	for i, r := range results {
		fmt.Fprintf(&sb, "\n%d. %s\n   %s\n   URL: %s\n", i+1, r.Title, strings.TrimSpace(r.Snippet), r.URL)
	}
	return sb.String()
}
