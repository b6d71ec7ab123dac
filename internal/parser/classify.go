package parser

import (
	"fmt"
	"regexp"
	"strings"
)

const maxSlugLen = 50

var (
	slugStripPattern = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpacePattern = regexp.MustCompile(`\s+`)
	importPattern    = regexp.MustCompile(`import.*?from\s+['"]([^'"]+)['"]`)
)

// generateFilename slugs the title and appends the extension mapped from typ.
// Any title that slugs to nothing, including punctuation-only ones, becomes
// "untitled" so the filename always has a stem.
func generateFilename(title, typ string) string {
	slug := strings.ToLower(title)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugSpacePattern.ReplaceAllString(slug, "-")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	if slug == "" {
		slug = "untitled"
	}
	return slug + extensionFor(typ)
}

func categorize(typ, content string) Category {
	if c, ok := typeCategories[typ]; ok {
		return c
	}
	switch {
	case containsAny(content, frontendMarkers):
		return CategoryFrontend
	case containsAny(content, backendMarkers):
		return CategoryBackend
	case containsAny(content, docsMarkers):
		return CategoryDocs
	case containsAny(content, configMarkers):
		return CategoryConfig
	}
	return CategoryMisc
}

func detectLanguage(typ, content string) string {
	if lang, ok := typeLanguages[typ]; ok {
		return lang
	}
	switch {
	case strings.Contains(content, "import React"):
		return LanguageJavaScript
	case strings.Contains(content, "def ") && strings.Contains(content, ":"):
		return LanguagePython
	case strings.Contains(content, "<?php"):
		return LanguagePHP
	case strings.Contains(content, "function") && strings.Contains(content, "{"):
		return LanguageJavaScript
	}
	return LanguageText
}

// extractImports returns the non-relative modules named by
// `import ... from '<module>'` statements, in first-seen order.
func extractImports(content string) []string {
	deps := []string{}
	seen := make(map[string]bool)
	for _, m := range importPattern.FindAllStringSubmatch(content, -1) {
		dep := m[1]
		if strings.HasPrefix(dep, ".") || strings.HasPrefix(dep, "/") {
			continue
		}
		if seen[dep] {
			continue
		}
		seen[dep] = true
		deps = append(deps, dep)
	}
	return deps
}

func formatSize(bytes int) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}

func countLines(content string) int {
	return strings.Count(content, "\n") + 1
}
