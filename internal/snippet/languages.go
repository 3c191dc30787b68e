package snippet

import (
	"path/filepath"
	"strings"
)

// LanguageForFile returns the language name for a given file path.
// Returns "" if the extension is not recognised.
func LanguageForFile(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".go":
		return "go"
	case ".rb":
		return "ruby"
	case ".py":
		return "python"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".mts", ".cts":
		return "typescript"
	case ".rs":
		return "rust"
	case ".java":
		return "java"
	case ".kt":
		return "kotlin"
	case ".cs":
		return "csharp"
	case ".cpp", ".cc", ".cxx":
		return "cpp"
	case ".c", ".h":
		return "c"
	case ".swift":
		return "swift"
	case ".php":
		return "php"
	case ".lua":
		return "lua"
	case ".sh", ".bash", ".zsh":
		return "bash"
	case ".sql":
		return "sql"
	case ".html", ".htm":
		return "html"
	case ".css":
		return "css"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".xml":
		return "xml"
	case ".md", ".mdx":
		return "markdown"
	case "":
		name := filepath.Base(path)
		if name == "Dockerfile" || name == "Makefile" {
			return strings.ToLower(name)
		}
	}
	return ""
}

// FileExtension returns a file extension (with leading dot) suited to
// the given language, for use when handing content to an editor.
// Unknown languages get ".txt".
func FileExtension(language string) string {
	switch strings.ToLower(language) {
	case "python":
		return ".py"
	case "bash", "shell", "zsh":
		return ".sh"
	case "javascript":
		return ".js"
	case "typescript":
		return ".ts"
	case "ruby":
		return ".rb"
	case "go":
		return ".go"
	case "rust":
		return ".rs"
	case "java":
		return ".java"
	case "kotlin":
		return ".kt"
	case "c":
		return ".c"
	case "cpp":
		return ".cpp"
	case "csharp":
		return ".cs"
	case "swift":
		return ".swift"
	case "php":
		return ".php"
	case "lua":
		return ".lua"
	case "sql":
		return ".sql"
	case "html":
		return ".html"
	case "css":
		return ".css"
	case "json":
		return ".json"
	case "yaml":
		return ".yaml"
	case "toml":
		return ".toml"
	case "xml":
		return ".xml"
	case "markdown":
		return ".md"
	default:
		return ".txt"
	}
}
