package ai

import (
	"strings"
	"testing"
	"time"

	"github.com/blogifyhq/blogify/internal/model/chat"
	"github.com/blogifyhq/blogify/internal/service/retrieval"
)

func TestBuildPromptTranscriptOrder(t *testing.T) {
	transcript := []chat.Turn{
		{Role: chat.RoleUser, Content: "first question"},
		{Role: chat.RoleAssistant, Content: "first answer"},
		{Role: chat.RoleUser, Content: "second question"},
	}

	prompt := BuildPrompt(nil, transcript)

	if !strings.HasPrefix(prompt, "You are Blogify's friendly assistant.") {
		t.Fatalf("prompt missing persona instruction: %q", prompt[:40])
	}
	if strings.Contains(prompt, "Blog Context:") {
		t.Fatal("prompt has context section without documents")
	}

	wantOrder := []string{
		"User: first question",
		"Assistant: first answer",
		"User: second question",
	}
	last := -1
	for _, line := range wantOrder {
		idx := strings.Index(prompt, line)
		if idx < 0 {
			t.Fatalf("prompt missing line %q", line)
		}
		if idx < last {
			t.Fatalf("line %q out of order", line)
		}
		last = idx
	}
}

func TestBuildPromptRendersContextBlock(t *testing.T) {
	docs := []retrieval.Document{{
		Title:     "Soil Basics",
		Body:      "Start with compost.",
		Author:    "Ada",
		CreatedAt: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}}

	prompt := BuildPrompt(docs, []chat.Turn{{Role: chat.RoleUser, Content: "hi"}})

	for _, want := range []string{
		"Blog Context:",
		"Blog Title: \"Soil Basics\"",
		"Author: Ada",
		"Date: 3/14/2025",
		"Blog Content:\nStart with compost.",
		"---",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptContextDefaults(t *testing.T) {
	docs := []retrieval.Document{{Title: "Untitled Musings", Body: "words"}}

	prompt := BuildPrompt(docs, nil)

	if !strings.Contains(prompt, "Author: Anonymous") {
		t.Fatal("missing Anonymous author default")
	}
	if strings.Contains(prompt, "Date:") {
		t.Fatal("date line should be omitted for unknown timestamps")
	}
}
