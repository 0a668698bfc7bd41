// Package retrieval is the client side of the knowledge-base boundary:
// an external collaborator indexes the scraped dealership content; this
// package only asks it for ranked snippets.
package retrieval

import "context"

type Snippet struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

const DefaultTopK = 4

type Retriever interface {
	// Retrieve returns at most topK snippets ranked best-first.
	Retrieve(ctx context.Context, query string, topK int) ([]Snippet, error)
}
