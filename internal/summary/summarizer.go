// Package summary generates short cat profile blurbs from the notes that
// accumulate on an entry. Entirely optional: when no LLM is configured the
// engine runs without a Summarizer.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyangmap/nyangmap/internal/llm"
	"github.com/nyangmap/nyangmap/internal/model"
)

const profilePrompt = `You are writing a short profile for a stray cat on a community map.

Current profile (may be empty):
%s

Observations from sightings:
%s

Write an updated profile of at most three sentences describing the cat's
appearance, temperament and condition. Do not invent details.
Return a JSON object: {"summary": "..."}`

type profileResult struct {
	Summary string `json:"summary"`
}

type Summarizer struct {
	LLM llm.Client
}

func NewSummarizer(client llm.Client) *Summarizer {
	return &Summarizer{LLM: client}
}

// SummarizeEntry condenses the entry's description and feeding notes into a
// short profile.
func (s *Summarizer) SummarizeEntry(ctx context.Context, entry model.Entry) (string, error) {
	var notes strings.Builder
	if entry.Description != "" {
		fmt.Fprintf(&notes, "- %s\n", entry.Description)
	}
	for _, f := range entry.Feedings {
		line := fmt.Sprintf("- fed by %s", f.FeederName)
		if f.Food != "" {
			line += fmt.Sprintf(" (%s)", f.Food)
		}
		notes.WriteString(line + "\n")
	}
	if entry.Neutered {
		notes.WriteString("- neutered (TNR complete)\n")
	}
	if notes.Len() == 0 {
		return "", fmt.Errorf("no observations to summarize for entry %s", entry.ID)
	}

	prompt := fmt.Sprintf(profilePrompt, entry.Summary, notes.String())

	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	result, err := llm.ParseJSON[profileResult](response)
	if err != nil {
		return "", fmt.Errorf("failed to parse summary result: %w", err)
	}

	return result.Summary, nil
}
