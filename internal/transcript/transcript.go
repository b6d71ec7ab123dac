// Package transcript loads chat exports and renders them as the plain
// Human:/Assistant: text the parser consumes.
package transcript

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Message is a single turn in a conversation.
type Message struct {
	Role      string // "user" or "assistant"
	Text      string
	Timestamp time.Time
}

// Load reads a transcript from path ("-" for stdin). JSONL exports are
// reconstructed and rendered; anything else is returned verbatim.
func Load(path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".jsonl") || looksLikeJSONL(data) {
		msgs, err := ParseJSONL(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		return Render(msgs), nil
	}
	return string(data), nil
}

// looksLikeJSONL reports whether the first non-blank line is a JSON object
// with a "type" field, which is how chat exports start.
func looksLikeJSONL(data []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		return line[0] == '{' && bytes.Contains(line, []byte(`"type"`))
	}
	return false
}

// Render formats messages as a Human:/Assistant: transcript. Consecutive
// messages from the same role are merged into one turn, so a code fence
// split across several assistant messages stays in a single turn.
func Render(msgs []Message) string {
	var sb strings.Builder
	for i, msg := range msgs {
		if i > 0 && msgs[i-1].Role == msg.Role {
			sb.WriteString(msg.Text)
			sb.WriteString("\n")
			continue
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		switch msg.Role {
		case "user":
			sb.WriteString("Human: ")
		case "assistant":
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString(msg.Role + ": ")
		}
		sb.WriteString(msg.Text)
		sb.WriteString("\n")
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}
