package filestore

import (
	"path/filepath"
	"strings"
)

var languageByExt = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".java":  "java",
	".c":     "c",
	".cpp":   "cpp",
	".cxx":   "cpp",
	".cc":    "cpp",
	".h":     "c",
	".hpp":   "cpp",
	".html":  "html",
	".css":   "css",
	".scss":  "scss",
	".less":  "less",
	".json":  "json",
	".xml":   "xml",
	".yaml":  "yaml",
	".yml":   "yaml",
	".md":    "markdown",
	".txt":   "plaintext",
	".sql":   "sql",
	".sh":    "shell",
	".bash":  "shell",
	".php":   "php",
	".rb":    "ruby",
	".go":    "go",
	".rs":    "rust",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".r":     "r",
	".m":     "objective-c",
	".pl":    "perl",
	".lua":   "lua",
	".dart":  "dart",
}

// DetectLanguage maps a file path to an editor language tag by its
// lowercased extension. Unknown extensions are plaintext.
func DetectLanguage(path string) string {
	ext := filepath.Ext(strings.ToLower(path))
	if lang, ok := languageByExt[ext]; ok {
		return lang
	}
	return "plaintext"
}
