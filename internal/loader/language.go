package loader

import (
	"path/filepath"
	"strings"
)

// extensionToLanguage maps file extensions to language names.
var extensionToLanguage = map[string]string{
	".md":       "Markdown",
	".markdown": "Markdown",
	".txt":      "Text",
	".rst":      "Text",
	".adoc":     "Text",
	".go":       "Go",
	".py":       "Python",
	".pyi":      "Python",
	".ts":       "TypeScript",
	".tsx":      "TypeScript",
	".js":       "JavaScript",
	".jsx":      "JavaScript",
	".mjs":      "JavaScript",
	".java":     "Java",
	".rs":       "Rust",
	".c":        "C",
	".h":        "C",
	".cpp":      "C++",
	".cc":       "C++",
	".hpp":      "C++",
	".cs":       "C#",
	".rb":       "Ruby",
	".php":      "PHP",
	".swift":    "Swift",
	".kt":       "Kotlin",
	".scala":    "Scala",
	".sh":       "Shell",
	".bash":     "Shell",
	".sql":      "SQL",
	".html":     "HTML",
	".css":      "CSS",
	".yaml":     "YAML",
	".yml":      "YAML",
	".json":     "JSON",
	".toml":     "TOML",
	".tf":       "Terraform",
	".proto":    "Protobuf",
	".lua":      "Lua",
	".ex":       "Elixir",
	".exs":      "Elixir",
	".hs":       "Haskell",
	".vue":      "Vue",
	".svelte":   "Svelte",
}

// filenameToLanguage maps specific filenames to language names.
var filenameToLanguage = map[string]string{
	"Dockerfile":  "Dockerfile",
	"Makefile":    "Makefile",
	"Jenkinsfile": "Groovy",
	"Gemfile":     "Ruby",
	"Rakefile":    "Ruby",
	"LICENSE":     "Text",
	"README":      "Text",
}

// DetectLanguage returns the language for a given filename based on its
// extension or exact filename. Returns "unknown" for unrecognized files.
func DetectLanguage(filename string) string {
	base := filepath.Base(filename)

	if lang, ok := filenameToLanguage[base]; ok {
		return lang
	}

	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return "unknown"
	}

	if lang, ok := extensionToLanguage[ext]; ok {
		return lang
	}

	return "unknown"
}
