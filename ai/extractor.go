package ai

import (
	"encoding/json"
	"strings"

	"flarelog/internal/errors"
)

// Extraction is a successfully recovered JSON array and the name of the
// cascade strategy that produced it.
type Extraction struct {
	Elements []json.RawMessage
	Strategy string
}

// strategy is one pure repair attempt: raw response text in, parsed array
// or error out. Strategies never touch the network and carry no state.
type strategy struct {
	name string
	fn   func(raw string) ([]json.RawMessage, error)
}

// The cascade runs in order and stops at the first strategy whose candidate
// parses. bracket_scan repeats the greedy bracket pass as a last resort:
// both stay because real responses vary in which noise surrounds the array,
// and the fenced pass between them can change what is left to scan.
var cascade = []strategy{
	{"direct", parseDirect},
	{"greedy_bracket", parseGreedyBracket},
	{"fenced_block", parseFencedBlock},
	{"bracket_scan", parseGreedyBracket},
}

// ExtractArray coerces free-form generated text into a JSON array. A parsed
// empty array is a valid (if unhelpful) success; only when every strategy
// fails does it report an extraction failure, so the caller can switch to
// local synthesis instead of rendering a silent partial result.
func ExtractArray(raw string) (*Extraction, error) {
	for _, s := range cascade {
		elements, err := s.fn(raw)
		if err == nil {
			return &Extraction{Elements: elements, Strategy: s.name}, nil
		}
	}
	return nil, errors.ExtractionFailed("no cascade strategy recovered a JSON array from the response")
}

// parseDirect attempts to parse the trimmed whole string
func parseDirect(raw string) ([]json.RawMessage, error) {
	return parseArray(strings.TrimSpace(raw))
}

// parseGreedyBracket parses the inclusive span between the first '[' and
// the last ']'
func parseGreedyBracket(raw string) ([]json.RawMessage, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, errors.ExtractionFailed("no bracketed span in response")
	}
	return parseArray(raw[start : end+1])
}

// parseFencedBlock parses the content between triple-backtick fences,
// tolerating an optional "json" label after the opening fence
func parseFencedBlock(raw string) ([]json.RawMessage, error) {
	open := strings.Index(raw, "```")
	if open == -1 {
		return nil, errors.ExtractionFailed("no code fence in response")
	}
	body := raw[open+3:]
	body = strings.TrimPrefix(body, "json")

	close := strings.Index(body, "```")
	if close == -1 {
		return nil, errors.ExtractionFailed("unterminated code fence in response")
	}
	return parseArray(strings.TrimSpace(body[:close]))
}

// parseArray validates a candidate by attempting the parse itself
func parseArray(candidate string) ([]json.RawMessage, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &elements); err != nil {
		return nil, errors.Wrap(err, "candidate is not a JSON array")
	}
	return elements, nil
}
