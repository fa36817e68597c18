package ai

import (
	"fmt"
	"strings"

	"github.com/blogifyhq/blogify/internal/model/chat"
	"github.com/blogifyhq/blogify/internal/service/retrieval"
)

// personaInstruction fixes the assistant's tone and behavior. It heads every
// assembled prompt.
const personaInstruction = "You are Blogify's friendly assistant. Answer in a warm, " +
	"encouraging, and creative tone. Use blog context if provided. Suggest posts " +
	"if asked. If a user asks for writing tips, offer helpful advice."

// BuildPrompt concatenates, in fixed order: the persona instruction, one
// rendered block per context document, and the full transcript including the
// current user turn. No truncation is applied; retention is the caller's
// concern.
func BuildPrompt(docs []retrieval.Document, transcript []chat.Turn) string {
	var b strings.Builder
	b.WriteString(personaInstruction)

	if len(docs) > 0 {
		b.WriteString("\n\nBlog Context:\n")
		blocks := make([]string, 0, len(docs))
		for _, doc := range docs {
			blocks = append(blocks, renderContextBlock(doc))
		}
		b.WriteString(strings.Join(blocks, "\n"))
	}

	b.WriteString("\n\nConversation:\n")
	for _, turn := range transcript {
		label := "Assistant"
		if turn.Role == chat.RoleUser {
			label = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, turn.Content)
	}

	return b.String()
}

// renderContextBlock formats one retrieved post. Author defaults to
// "Anonymous"; the date line is omitted when the timestamp is unknown.
func renderContextBlock(doc retrieval.Document) string {
	author := doc.Author
	if author == "" {
		author = "Anonymous"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Blog Title: %q\n", doc.Title)
	fmt.Fprintf(&b, "Author: %s\n", author)
	if !doc.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", doc.CreatedAt.Format("1/2/2006"))
	}
	fmt.Fprintf(&b, "\nBlog Content:\n%s\n\n---", doc.Body)
	return b.String()
}
