package ai

import (
	"fmt"
	"strings"

	"github.com/RyomenPanda/PandaCode/schema"
)

const (
	maxContextFileBytes = 2000
	maxOpenFiles        = 5
	maxHistoryExchanges = 3
	maxHistoryReplyLen  = 200
)

// buildContextPrompt assembles the chat prompt from the message and
// whatever editor state the caller provided.
func buildContextPrompt(message string, chatCtx schema.ChatContext) string {
	var parts []string
	parts = append(parts, "You are an expert programming assistant. You help developers with code analysis, refactoring, debugging, and general programming tasks.")

	if current := chatCtx.CurrentFile; current != nil {
		parts = append(parts, fmt.Sprintf("\nCurrent file: %s (%s)", current.Path, current.Language))
		if current.Content != "" {
			content := current.Content
			if len(content) > maxContextFileBytes {
				content = content[:maxContextFileBytes] + "..."
			}
			parts = append(parts, fmt.Sprintf("```%s\n%s\n```", current.Language, content))
		}
	}

	if len(chatCtx.OpenFiles) > 0 {
		open := chatCtx.OpenFiles
		if len(open) > maxOpenFiles {
			open = open[:maxOpenFiles]
		}
		lines := make([]string, 0, len(open))
		for _, f := range open {
			lines = append(lines, fmt.Sprintf("- %s (%s)", f.Path, f.Language))
		}
		parts = append(parts, "\nOpen files:\n"+strings.Join(lines, "\n"))
	}

	if len(chatCtx.History) > 0 {
		history := chatCtx.History
		if len(history) > maxHistoryExchanges {
			history = history[len(history)-maxHistoryExchanges:]
		}
		parts = append(parts, "\nRecent conversation:")
		for _, exchange := range history {
			parts = append(parts, "User: "+exchange.User)
			reply := exchange.Assistant
			if len(reply) > maxHistoryReplyLen {
				reply = reply[:maxHistoryReplyLen] + "..."
			}
			parts = append(parts, "Assistant: "+reply)
		}
	}

	parts = append(parts, "\nUser request: "+message)
	return strings.Join(parts, "\n")
}
