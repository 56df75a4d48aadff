// Package analysis turns a rendered inspection report into a prioritized,
// homeowner-friendly findings summary using a language model, and parses the
// model output into structured issue cards.
package analysis

import (
	"context"
	"fmt"
)

// systemPrompt frames the model as an inspector with repair-pricing knowledge.
const systemPrompt = `You are a certified home inspector with advanced knowledge in residential systems: roofing, plumbing, electrical, HVAC, foundation, and structural components.

You are also experienced in both professional contractor pricing and do-it-yourself (DIY) repair cost estimates.

Your role is to analyze home inspection reports, identify issues, prioritize them, and for each, provide:
- A professional repair/replacement cost estimate
- A potential DIY cost estimate (if applicable)
- An estimate of the remaining useful life for affected components

Respond in a structured, thorough, and homeowner-friendly format.`

// userPromptFormat wraps the report text with per-issue output instructions.
const userPromptFormat = `Analyze the following home inspection report.

For each major section (e.g., Roof, Plumbing, Electrical, HVAC, Foundation):
1. Identify and clearly describe each issue.
2. Assign a priority level: CRITICAL, MODERATE, or INFORMATIONAL.
3. For each issue:
   - Provide a brief explanation of the concern.
   - Estimate the cost to repair/replace:
     - DIY Estimate (if safe and feasible)
     - Professional Estimate
   - Estimate the remaining useful life of the affected component.
   - If the issue is DIY-appropriate, provide a YouTube search link that a homeowner could use to learn how to fix it.
     - Format: [Search YouTube](https://www.youtube.com/results?search_query=how+to+FIX_TOPIC)

4. Organize the output by severity, from most critical to least important.
5. End with a summary that ranks the systems by urgency and cost impact.

Write each issue as its own paragraph separated by a blank line, starting with a heading line "Component – Issue Title" followed by these detail lines:
- Severity: CRITICAL, MODERATE, or INFORMATIONAL
- Issue: one-sentence description
- DIY Estimate: cost range, or "not recommended"
- Professional Estimate: cost range
- Remaining Life: estimate for the affected component
- DIY Tutorial: the YouTube search link

Here is the report to analyze:
%s`

// Summarizer produces the analysis text for a rendered report.
type Summarizer interface {
	Summarize(ctx context.Context, reportText string) (string, error)
}

// userPrompt builds the full user message for one report.
func userPrompt(reportText string) string {
	return fmt.Sprintf(userPromptFormat, reportText)
}

// IssueCard is one structured finding extracted from the model output.
type IssueCard struct {
	Title         string `json:"title"`
	Severity      string `json:"severity"`
	Issue         string `json:"issue"`
	DIYEstimate   string `json:"diyEstimate"`
	ProEstimate   string `json:"proEstimate"`
	RemainingLife string `json:"remainingLife"`
	YoutubeSearch string `json:"youtubeSearch"`
}
