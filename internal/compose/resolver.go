package compose

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/fedipost-dev/fedipost/shared/domain"
	"github.com/fedipost-dev/fedipost/shared/logger"
)

// Trigger is the character that activated inline autocompletion.
type Trigger string

const (
	TriggerMention Trigger = "@"
	TriggerHashtag Trigger = "#"
	TriggerEmoji   Trigger = ":"
)

const suggestionLimit = 5

// ErrSuperseded marks a response that arrived after a newer keystroke was
// dispatched. Callers must drop it unconditionally, never merge it.
var ErrSuperseded = errors.New("autocomplete response superseded by a newer query")

// Suggestion is one autocomplete candidate. Value is the canonical
// identifier spliced into the body (acct, tag name, or emoji shortcode).
type Suggestion struct {
	Value    string `json:"value"`
	Label    string `json:"label,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// SearchService is the slice of the instance API the resolver needs.
type SearchService interface {
	Search(ctx context.Context, entityType, query string, limit int) (*domain.SearchResults, error)
}

// Resolver turns a trigger key plus partial text into a ranked suggestion
// list. Each session owns one Resolver; latestQuery is the race-guard state
// that makes the last keystroke win over slower in-flight responses.
type Resolver struct {
	search   SearchService
	emojis   []domain.CustomEmoji
	sanitize *bluemonday.Policy

	mu          sync.Mutex
	latestQuery string
}

func NewResolver(search SearchService, emojis []domain.CustomEmoji) *Resolver {
	return &Resolver{
		search:   search,
		emojis:   emojis,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Resolve returns suggestions for a trigger and query, and whether anything
// matched. An empty query resolves immediately without a network call.
// Search failures surface as no match, never as an error; a superseded
// account/hashtag query returns ErrSuperseded.
func (r *Resolver) Resolve(ctx context.Context, trigger Trigger, query string) ([]Suggestion, bool, error) {
	if query == "" {
		return nil, false, nil
	}

	if trigger == TriggerEmoji {
		suggestions := filterShortcodes(r.emojis, query)
		return suggestions, len(suggestions) > 0, nil
	}

	entityType := map[Trigger]string{
		TriggerMention: "accounts",
		TriggerHashtag: "hashtags",
	}[trigger]

	r.mu.Lock()
	r.latestQuery = query
	r.mu.Unlock()

	results, err := r.search.Search(ctx, entityType, query, suggestionLimit)
	if err != nil {
		logger.Log.Warn("autocomplete search failed",
			"component", "resolver",
			"type", entityType,
			"error", err)
		return nil, false, nil
	}

	r.mu.Lock()
	stale := r.latestQuery != query
	r.mu.Unlock()
	if stale {
		return nil, false, ErrSuperseded
	}

	var suggestions []Suggestion
	switch trigger {
	case TriggerMention:
		for _, a := range results.Accounts {
			label := r.sanitize.Sanitize(a.DisplayName)
			if label == "" {
				label = a.Username
			}
			suggestions = append(suggestions, Suggestion{
				Value:    a.Acct,
				Label:    label,
				ImageURL: a.AvatarStatic,
			})
		}
	case TriggerHashtag:
		for _, t := range results.Hashtags {
			suggestions = append(suggestions, Suggestion{Value: t.Name})
		}
	}
	if len(suggestions) > suggestionLimit {
		suggestions = suggestions[:suggestionLimit]
	}
	return suggestions, len(suggestions) > 0, nil
}

// Expansion is the text a selected suggestion splices in place of the
// trigger and query: the literal trigger key followed by the canonical
// identifier, except emoji which are wrapped in colons.
func Expansion(trigger Trigger, value string) string {
	if trigger == TriggerEmoji {
		return ":" + value + ":"
	}
	return string(trigger) + value
}

// SpliceExpansion replaces body[start:end) (byte offsets covering the
// trigger and query span) with the expansion and a trailing space.
func SpliceExpansion(body string, start, end int, expansion string) string {
	if start < 0 || end > len(body) || start > end {
		return body
	}
	return body[:start] + expansion + " " + body[end:]
}

// filterShortcodes ranks the emoji directory against a query: shortcodes
// starting with the query first, then shortcodes containing it, shorter
// shortcode winning ties. Capped at the suggestion limit.
func filterShortcodes(emojis []domain.CustomEmoji, query string) []Suggestion {
	query = strings.ToLower(query)

	type candidate struct {
		emoji domain.CustomEmoji
		rank  int
	}
	var candidates []candidate
	for _, e := range emojis {
		lower := strings.ToLower(e.Shortcode)
		switch {
		case strings.HasPrefix(lower, query):
			candidates = append(candidates, candidate{e, 0})
		case strings.Contains(lower, query):
			candidates = append(candidates, candidate{e, 1})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].rank != candidates[j].rank {
			return candidates[i].rank < candidates[j].rank
		}
		return len(candidates[i].emoji.Shortcode) < len(candidates[j].emoji.Shortcode)
	})
	if len(candidates) > suggestionLimit {
		candidates = candidates[:suggestionLimit]
	}

	suggestions := make([]Suggestion, len(candidates))
	for i, c := range candidates {
		suggestions[i] = Suggestion{Value: c.emoji.Shortcode, ImageURL: c.emoji.Url}
	}
	return suggestions
}
