package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// jsonlLine is a single line from a JSONL chat export.
type jsonlLine struct {
	Type       string       `json:"type"`
	UUID       string       `json:"uuid"`
	ParentUUID *string      `json:"parentUuid"`
	Timestamp  string       `json:"timestamp"`
	Message    jsonlMessage `json:"message"`
}

type jsonlMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// writeInput is the input of a file-writing tool call.
type writeInput struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// ParseJSONL reconstructs a conversation from a JSONL export. Lines are
// ordered by following parentUuid links from each root; orphans are
// appended by timestamp. Files written through a Write tool call become
// fenced code blocks so the parser can pick them up; other tool calls, tool
// results and thinking blocks are dropped.
func ParseJSONL(r io.Reader) ([]Message, error) {
	byUUID := make(map[string]*jsonlLine)
	var roots []string
	children := make(map[string]string) // parent uuid -> child uuid

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)
	for scanner.Scan() {
		var line jsonlLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			continue // skip malformed lines
		}
		if line.Type != "user" && line.Type != "assistant" {
			continue
		}

		byUUID[line.UUID] = &line
		if line.ParentUUID == nil || *line.ParentUUID == "" {
			roots = append(roots, line.UUID)
		} else {
			children[*line.ParentUUID] = line.UUID
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	if len(byUUID) == 0 {
		return nil, nil
	}

	var ordered []*jsonlLine
	visited := make(map[string]bool, len(byUUID))
	for _, rootID := range roots {
		for current := rootID; current != "" && !visited[current]; current = children[current] {
			line, ok := byUUID[current]
			if !ok {
				break
			}
			visited[current] = true
			ordered = append(ordered, line)
		}
	}

	var orphans []*jsonlLine
	for id, line := range byUUID {
		if !visited[id] {
			orphans = append(orphans, line)
		}
	}
	sort.Slice(orphans, func(i, j int) bool {
		if orphans[i].Timestamp != orphans[j].Timestamp {
			return orphans[i].Timestamp < orphans[j].Timestamp
		}
		return orphans[i].UUID < orphans[j].UUID
	})
	ordered = append(ordered, orphans...)

	var msgs []Message
	for _, line := range ordered {
		text, isToolResult := extractText(line)
		if isToolResult || text == "" {
			continue
		}
		ts, _ := time.Parse(time.RFC3339Nano, line.Timestamp)
		msgs = append(msgs, Message{
			Role:      line.Type,
			Text:      text,
			Timestamp: ts,
		})
	}
	return msgs, nil
}

// extractText returns the text of a message and whether it was a tool result.
func extractText(line *jsonlLine) (string, bool) {
	content := line.Message.Content
	if content == nil {
		return "", false
	}

	var plain string
	if err := json.Unmarshal(content, &plain); err == nil {
		return plain, false
	}

	var blocks []contentBlock
	if err := json.Unmarshal(content, &blocks); err != nil {
		return "", false
	}

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case "tool_result":
			return "", true
		case "text":
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		case "tool_use":
			if fenced, ok := writtenFile(b); ok {
				parts = append(parts, fenced)
			}
		}
	}
	return strings.Join(parts, "\n"), false
}

// writtenFile renders a Write tool call as a fenced block tagged with the
// language of the target file.
func writtenFile(b contentBlock) (string, bool) {
	if b.Name != "Write" || len(b.Input) == 0 {
		return "", false
	}
	var in writeInput
	if err := json.Unmarshal(b.Input, &in); err != nil || in.Content == "" {
		return "", false
	}
	return fmt.Sprintf("%s:\n```%s\n%s\n```", in.FilePath, fenceLanguage(in.FilePath), strings.TrimRight(in.Content, "\n")), true
}

var fenceLanguages = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".jsx":  "jsx",
	".ts":   "typescript",
	".tsx":  "tsx",
	".md":   "markdown",
	".json": "json",
	".html": "html",
	".css":  "css",
	".sh":   "bash",
	".yml":  "yaml",
	".yaml": "yaml",
	".sql":  "sql",
	".rs":   "rust",
}

func fenceLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := fenceLanguages[ext]; ok {
		return lang
	}
	if tag := strings.TrimPrefix(ext, "."); tag != "" && isWord(tag) {
		return tag
	}
	return "text"
}

func isWord(s string) bool {
	for _, r := range s {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z') {
			return false
		}
	}
	return true
}
