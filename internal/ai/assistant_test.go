package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/RyomenPanda/PandaCode/schema"
)

func TestMissingKeyDegradesToUnavailable(t *testing.T) {
	assistant, err := New(context.Background(), "", "", nil)
	if err != nil {
		t.Fatalf("new assistant: %v", err)
	}
	if assistant.Available() {
		t.Fatalf("expected unavailable assistant")
	}
	res := assistant.Chat(context.Background(), "hello", schema.ChatContext{})
	if res.Success {
		t.Fatalf("expected failure response")
	}
	if !strings.Contains(res.Error, "not available") {
		t.Fatalf("error = %q", res.Error)
	}
	if res := assistant.Refactor(context.Background(), "x=1", "python", "rename"); res.Success {
		t.Fatalf("expected refactor unavailable")
	}
	if res := assistant.GenerateTests(context.Background(), "x=1", "python"); res.Success {
		t.Fatalf("expected tests unavailable")
	}
}

func TestBuildContextPromptBare(t *testing.T) {
	prompt := buildContextPrompt("fix the bug", schema.ChatContext{})
	if !strings.Contains(prompt, "expert programming assistant") {
		t.Fatalf("missing preamble: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "User request: fix the bug") {
		t.Fatalf("missing request: %q", prompt)
	}
}

func TestBuildContextPromptCurrentFile(t *testing.T) {
	prompt := buildContextPrompt("explain", schema.ChatContext{
		CurrentFile: &schema.FileContext{
			Path:     "src/main.py",
			Content:  "print('hi')",
			Language: "python",
		},
	})
	if !strings.Contains(prompt, "Current file: src/main.py (python)") {
		t.Fatalf("missing file header: %q", prompt)
	}
	if !strings.Contains(prompt, "```python\nprint('hi')\n```") {
		t.Fatalf("missing fenced content: %q", prompt)
	}
}

func TestBuildContextPromptTruncatesLargeFile(t *testing.T) {
	big := strings.Repeat("a", maxContextFileBytes+500)
	prompt := buildContextPrompt("explain", schema.ChatContext{
		CurrentFile: &schema.FileContext{Path: "big.txt", Content: big, Language: "plaintext"},
	})
	if strings.Contains(prompt, big) {
		t.Fatalf("content not truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("a", maxContextFileBytes)+"...") {
		t.Fatalf("expected truncation marker")
	}
}

func TestBuildContextPromptLimitsOpenFilesAndHistory(t *testing.T) {
	chatCtx := schema.ChatContext{}
	for i := 0; i < 8; i++ {
		chatCtx.OpenFiles = append(chatCtx.OpenFiles, schema.FileContext{
			Path: string(rune('a'+i)) + ".go", Language: "go",
		})
	}
	for i := 0; i < 6; i++ {
		chatCtx.History = append(chatCtx.History, schema.ChatExchange{
			User:      "question",
			Assistant: "answer",
		})
	}
	prompt := buildContextPrompt("next", chatCtx)
	if strings.Contains(prompt, "f.go") {
		t.Fatalf("open files not limited: %q", prompt)
	}
	if got := strings.Count(prompt, "User: question"); got != maxHistoryExchanges {
		t.Fatalf("history exchanges = %d", got)
	}
}
