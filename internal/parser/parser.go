// Package parser extracts artifacts and fenced code blocks from chat
// transcripts and classifies them into a repository layout.
package parser

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Version identifies the extraction rules reported by the health endpoint.
const Version = "1.0.0"

const (
	minCodeBlockLen   = 50
	overlapPrefixLen  = 100
	codeBlockLanguage = LanguageText
)

var (
	// Current syntax: the closing tag carries the namespace, the opening tag may not.
	currentArtifactPattern = regexp.MustCompile(`(?s)<(?:antml:)?artifact(\s[^>]*\bidentifier\s*=\s*"[^"]*"[^>]*)>(.*?)</antml:artifact>`)
	legacyArtifactPattern  = regexp.MustCompile(`(?s)<artifact(\s[^>]*\bid\s*=\s*"[^"]*"[^>]*)>(.*?)</artifact>`)
	attributePattern       = regexp.MustCompile(`([A-Za-z_][\w:.-]*)\s*=\s*"([^"]*)"`)
	codeBlockPattern       = regexp.MustCompile("(?s)```(\\w+)?\\n(.*?)```")
)

// IDFunc generates identifiers for items that do not declare one.
type IDFunc func() string

// Option configures a Parser.
type Option func(*Parser)

// WithIDGenerator replaces the default uuid-based id generator.
func WithIDGenerator(fn IDFunc) Option {
	return func(p *Parser) {
		p.newID = fn
	}
}

// Parser extracts structured content from transcripts. It holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	newID  IDFunc
	logger *slog.Logger
}

func New(logger *slog.Logger, opts ...Option) *Parser {
	p := &Parser{
		newID:  defaultID,
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func defaultID() string {
	return "item_" + uuid.NewString()
}

// ParseValue parses a decoded JSON value. Anything other than a non-empty
// string fails with ErrInvalidInput.
func (p *Parser) ParseValue(v any) (*ParseResult, error) {
	text, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: expected string, got %T", ErrInvalidInput, v)
	}
	return p.Parse(text)
}

// Parse extracts artifacts and code blocks from a transcript.
func (p *Parser) Parse(text string) (result *ParseResult, err error) {
	if text == "" {
		return nil, ErrInvalidInput
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("parsing panicked", "panic", r)
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	p.logger.Debug("parsing conversation", "length", len(text))

	artifacts := p.extractArtifacts(text)
	codeBlocks := p.extractCodeBlocks(text, artifacts)
	dependencies := []string{}

	result = &ParseResult{
		Artifacts:       artifacts,
		CodeBlocks:      codeBlocks,
		FileReferences:  []string{},
		Dependencies:    dependencies,
		APIEndpoints:    []string{},
		EnvironmentVars: []string{},
		Metadata:        generateMetadata(artifacts, codeBlocks, len(dependencies)),
	}

	p.logger.Debug("parsing complete",
		"artifacts", len(artifacts),
		"code_blocks", len(codeBlocks),
	)
	return result, nil
}

// extractArtifacts collects current-syntax artifacts, falling back to the
// legacy syntax only when none are present. The two are never merged.
func (p *Parser) extractArtifacts(text string) []Artifact {
	artifacts := p.matchArtifacts(text, currentArtifactPattern, "identifier")
	if len(artifacts) == 0 {
		artifacts = p.matchArtifacts(text, legacyArtifactPattern, "id")
	}
	return artifacts
}

func (p *Parser) matchArtifacts(text string, pattern *regexp.Regexp, idAttr string) []Artifact {
	artifacts := []Artifact{}
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		attrs := parseAttributes(m[1])
		if !hasAttributes(attrs, "type", "title") {
			continue
		}
		artifacts = append(artifacts, p.newArtifact(attrs[idAttr], attrs["type"], attrs["title"], m[2]))
	}
	return artifacts
}

// hasAttributes reports whether every name is present, even with an empty value.
func hasAttributes(attrs map[string]string, names ...string) bool {
	for _, name := range names {
		if _, ok := attrs[name]; !ok {
			return false
		}
	}
	return true
}

func parseAttributes(tag string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attributePattern.FindAllStringSubmatch(tag, -1) {
		if _, dup := attrs[m[1]]; !dup {
			attrs[m[1]] = m[2]
		}
	}
	return attrs
}

// newArtifact builds an artifact from raw tag values. Missing id, type and
// title get defaults on the artifact itself, but the derived fields are
// computed from the values as written.
func (p *Parser) newArtifact(id, typ, title, content string) Artifact {
	content = strings.TrimSpace(content)
	if id == "" {
		id = p.newID()
	}
	stored := typ
	if stored == "" {
		stored = defaultType
	}
	displayTitle := title
	if displayTitle == "" {
		displayTitle = defaultTitle
	}

	return Artifact{
		ID:           id,
		Title:        displayTitle,
		Type:         stored,
		Content:      content,
		Filename:     generateFilename(title, typ),
		Category:     categorize(typ, content),
		Language:     detectLanguage(typ, content),
		Dependencies: extractImports(content),
		Size:         formatSize(len(content)),
		LineCount:    countLines(content),
		Description:  descriptionFor(typ),
	}
}

// extractCodeBlocks collects fenced code spans that are long enough and not
// already contained in one of the artifacts from the same transcript.
func (p *Parser) extractCodeBlocks(text string, artifacts []Artifact) []CodeBlock {
	blocks := []CodeBlock{}
	for _, m := range codeBlockPattern.FindAllStringSubmatch(text, -1) {
		lang := m[1]
		if lang == "" {
			lang = codeBlockLanguage
		}
		content := strings.TrimSpace(m[2])

		if utf8.RuneCountInString(content) < minCodeBlockLen {
			continue
		}
		if overlapsArtifact(content, artifacts) {
			continue
		}

		blocks = append(blocks, CodeBlock{
			ID:           p.newID(),
			Title:        lang + " Code Block",
			Type:         "text/" + lang,
			Content:      content,
			Filename:     "code." + lang,
			Category:     CategoryMisc,
			Language:     lang,
			Dependencies: extractImports(content),
			Size:         formatSize(len(content)),
			LineCount:    countLines(content),
			Description:  lang + " code",
		})
	}
	return blocks
}

func overlapsArtifact(content string, artifacts []Artifact) bool {
	prefix := runePrefix(content, overlapPrefixLen)
	for _, a := range artifacts {
		if strings.Contains(a.Content, prefix) {
			return true
		}
	}
	return false
}

func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
