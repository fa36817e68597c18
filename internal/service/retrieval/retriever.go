package retrieval

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blogifyhq/blogify/internal/model/blog"
)

// Document is a retrieved post reduced to what the prompt needs. It lives for
// one request only and is never persisted.
type Document struct {
	Title     string
	Body      string
	Author    string
	CreatedAt time.Time
}

// Searcher is the document-collection capability the retriever consumes:
// case-insensitive substring match on title or body, newest first.
type Searcher interface {
	SearchByKeyword(ctx context.Context, keyword string, limit int) ([]blog.WithAuthor, error)
}

// triggerRule pairs a pattern with whether matching alone suffices or the
// message must also exceed minTopicalLength. Evaluated in order, first match
// wins.
type triggerRule struct {
	pattern     *regexp.Regexp
	needsLength bool
}

// Messages that name blogs outright always trigger retrieval; broader topical
// chatter only triggers once it is long enough to carry a usable keyword.
const minTopicalLength = 20

var triggerRules = []triggerRule{
	{pattern: regexp.MustCompile(`(?i)show\s+(me\s+)?(the\s+)?blogs?`)},
	{pattern: regexp.MustCompile(`(?i)find\s+(me\s+)?blogs?\s+about`)},
	{pattern: regexp.MustCompile(`(?i)posts?\s+about`)},
	{pattern: regexp.MustCompile(`(?i)blog|post|article|story|write|author|recommend|suggest|tip|advice`), needsLength: true},
}

// stopWords are filler and trigger words that make poor search terms.
var stopWords = map[string]struct{}{
	"about": {}, "advice": {}, "article": {}, "articles": {}, "blog": {},
	"blogs": {}, "could": {}, "find": {}, "from": {}, "have": {}, "help": {},
	"know": {}, "like": {}, "please": {}, "post": {}, "posts": {},
	"recommend": {}, "should": {}, "show": {}, "some": {}, "story": {},
	"suggest": {}, "tell": {}, "that": {}, "their": {}, "there": {},
	"they": {}, "this": {}, "tips": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "will": {}, "with": {}, "would": {}, "write": {},
	"writing": {}, "your": {},
}

// Retriever decides whether a user message warrants blog context and fetches
// at most one matching post. Single term, single document: bounds prompt size
// and query cost at the expense of recall.
type Retriever struct {
	search Searcher
	logger *zap.Logger
}

func New(search Searcher, logger *zap.Logger) *Retriever {
	return &Retriever{search: search, logger: logger}
}

// MaybeRetrieve inspects the latest user message and returns supplementary
// documents, possibly none. The decision is a pure function of the message
// text; only the fetch touches the store.
func (r *Retriever) MaybeRetrieve(ctx context.Context, message string) ([]Document, error) {
	if !shouldRetrieve(message) {
		return nil, nil
	}

	keyword, ok := extractKeyword(message)
	if !ok {
		return nil, nil
	}

	found, err := r.search.SearchByKeyword(ctx, keyword, 1)
	if err != nil {
		return nil, fmt.Errorf("blog search for %q: %w", keyword, err)
	}

	docs := make([]Document, 0, len(found))
	for _, b := range found {
		docs = append(docs, Document{
			Title:     b.Title,
			Body:      b.Body,
			Author:    b.AuthorName,
			CreatedAt: b.CreatedAt,
		})
	}

	r.logger.Debug("blog context retrieval",
		zap.String("keyword", keyword),
		zap.Int("documents", len(docs)))
	return docs, nil
}

func shouldRetrieve(message string) bool {
	for _, rule := range triggerRules {
		if !rule.pattern.MatchString(message) {
			continue
		}
		if rule.needsLength && len(message) <= minTopicalLength {
			continue
		}
		return true
	}
	return false
}

// extractKeyword picks the first token that survives lower-casing, the
// length floor, and the stop-word list.
func extractKeyword(message string) (string, bool) {
	for _, token := range strings.Fields(strings.ToLower(message)) {
		if len(token) <= 3 {
			continue
		}
		if _, stopped := stopWords[token]; stopped {
			continue
		}
		return token, true
	}
	return "", false
}
