package tagger

import (
	"context"
	"database/sql"
	"fmt"

	"tweetvault/pkg/archive"
)

// untagged entries only; retweets and replies are other people's words
// and never auto-tagged.
const untaggedEntriesStatement = `
	SELECT e.id, e.text
	FROM entries e
	LEFT JOIN entry_tags et ON et.entry_id = e.id
	WHERE et.entry_id IS NULL AND e.kind NOT IN ('retweet', 'reply')
	ORDER BY e.created_at DESC
	LIMIT ?
	`

// minConfidence gates LLM suggestions; rule hits always pass.
const minConfidence = 0.5

// Options tunes one auto-tag run.
type Options struct {
	Limit      int
	Classifier *Classifier // nil means keyword rules only
	DryRun     bool
}

// RunResult reports what an auto-tag run did (or would do, under DryRun).
type RunResult struct {
	Scanned   int                 `json:"scanned"`
	Tagged    int                 `json:"tagged"`
	Suggested map[string][]string `json:"suggested"`
}

// Run scans untagged entries and applies suggestions as auto-sourced
// associations. With a Classifier set, its suggestions are merged with
// the rule hits; the rule set keeps working when the API is unavailable.
func Run(ctx context.Context, db *sql.DB, opts Options) (RunResult, error) {
	if opts.Limit < 1 {
		opts.Limit = 50
	}

	rows, err := db.QueryContext(ctx, untaggedEntriesStatement, opts.Limit)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to query untagged entries: %w", err)
	}
	defer rows.Close()

	type candidate struct {
		id   string
		text string
	}
	candidates := []candidate{}
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.id, &c.text); err != nil {
			return RunResult{}, fmt.Errorf("failed to scan entry row: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err = rows.Err(); err != nil {
		return RunResult{}, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var existing []string
	if opts.Classifier != nil {
		tags, err := archive.ListTags(ctx, db)
		if err != nil {
			return RunResult{}, err
		}
		for _, tag := range tags {
			existing = append(existing, tag.Name)
		}
	}

	result := RunResult{Suggested: map[string][]string{}}
	for _, c := range candidates {
		result.Scanned++

		suggestions := SuggestByRules(c.text)
		if opts.Classifier != nil {
			llm, err := opts.Classifier.Classify(ctx, c.text, existing)
			if err != nil {
				return result, fmt.Errorf("classify entry %s: %w", c.id, err)
			}
			suggestions = merge(suggestions, llm)
		}

		applied := []string{}
		for _, s := range suggestions {
			if s.Confidence < minConfidence {
				continue
			}
			if !opts.DryRun {
				if _, err := archive.EnsureTag(ctx, db, s.Tag, s.Category); err != nil {
					return result, err
				}
				if _, err := archive.TagEntry(ctx, db, c.id, s.Tag, archive.SourceAuto); err != nil {
					return result, err
				}
			}
			applied = append(applied, s.Tag)
		}

		if len(applied) > 0 {
			result.Tagged++
			result.Suggested[c.id] = applied
		}
	}

	return result, nil
}

// merge combines rule and LLM suggestions, deduplicating by tag name with
// the rule hit winning (its category assignment is curated).
func merge(rules, llm []Suggestion) []Suggestion {
	seen := make(map[string]bool, len(rules))
	for _, s := range rules {
		seen[s.Tag] = true
	}

	merged := rules
	for _, s := range llm {
		if !seen[s.Tag] {
			seen[s.Tag] = true
			merged = append(merged, s)
		}
	}
	return merged
}
