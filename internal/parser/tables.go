package parser

import "strings"

const (
	defaultType      = TypeCode
	defaultTitle     = "Untitled Artifact"
	defaultExtension = ".txt"
)

var typeExtensions = map[string]string{
	TypeReact:      ".jsx",
	TypeCode:       ".js",
	TypeHTML:       ".html",
	TypeMarkdown:   ".md",
	TypeSVG:        ".svg",
	TypeMermaid:    ".mmd",
	TypeJavaScript: ".js",
	TypeTypeScript: ".ts",
	TypeCSS:        ".css",
	TypeJSON:       ".json",
}

var typeCategories = map[string]Category{
	TypeReact:      CategoryFrontend,
	TypeCode:       CategoryBackend,
	TypeHTML:       CategoryFrontend,
	TypeMarkdown:   CategoryDocs,
	TypeJavaScript: CategoryBackend,
	TypeTypeScript: CategoryBackend,
	TypeCSS:        CategoryFrontend,
	TypeJSON:       CategoryConfig,
	TypeSVG:        CategoryFrontend,
}

var typeLanguages = map[string]string{
	TypeReact:    LanguageJavaScript,
	TypeHTML:     LanguageHTML,
	TypeMarkdown: LanguageMarkdown,
}

var typeDescriptions = map[string]string{
	TypeReact:    "React component with interactive UI",
	TypeCode:     "JavaScript/TypeScript code module",
	TypeHTML:     "HTML document with styling and scripts",
	TypeMarkdown: "Documentation in Markdown format",
}

// Content markers, checked in order; the first matching rule wins.
var (
	frontendMarkers = []string{"import React", "useState", "JSX"}
	backendMarkers  = []string{"express", "fastify", `addEventListener("fetch")`}
	docsMarkers     = []string{"# ", "## ", "README"}
	configMarkers   = []string{`"scripts"`, "package.json", "wrangler.toml"}
)

func extensionFor(typ string) string {
	if ext, ok := typeExtensions[typ]; ok {
		return ext
	}
	return defaultExtension
}

func descriptionFor(typ string) string {
	if d, ok := typeDescriptions[typ]; ok {
		return d
	}
	return typ + " artifact"
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
