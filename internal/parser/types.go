package parser

// Category is the coarse project area an extracted item belongs to.
type Category string

const (
	CategoryFrontend Category = "frontend"
	CategoryBackend  Category = "backend"
	CategoryDocs     Category = "docs"
	CategoryConfig   Category = "config"
	CategoryMisc     Category = "misc"
)

// Artifact types declared by the producer of a transcript.
const (
	TypeReact      = "application/vnd.ant.react"
	TypeCode       = "application/vnd.ant.code"
	TypeHTML       = "text/html"
	TypeMarkdown   = "text/markdown"
	TypeSVG        = "image/svg+xml"
	TypeMermaid    = "application/vnd.ant.mermaid"
	TypeJavaScript = "text/javascript"
	TypeTypeScript = "text/typescript"
	TypeCSS        = "text/css"
	TypeJSON       = "application/json"
)

// Languages reported for artifacts.
const (
	LanguageJavaScript = "javascript"
	LanguageHTML       = "html"
	LanguageMarkdown   = "markdown"
	LanguagePython     = "python"
	LanguagePHP        = "php"
	LanguageText       = "text"
)

// Complexity estimates.
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// Recommended repository layouts.
const (
	StructureFullstack    = "fullstack"
	StructureFrontendOnly = "frontend-only"
	StructureBackendOnly  = "backend-only"
	StructureMultiModule  = "multi-module"
	StructureSimple       = "simple"
)

// Artifact is a named, typed content block explicitly delimited in a transcript.
type Artifact struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Content      string   `json:"content"`
	Filename     string   `json:"filename"`
	Category     Category `json:"category"`
	Language     string   `json:"language"`
	Dependencies []string `json:"dependencies"`
	Size         string   `json:"size"`
	LineCount    int      `json:"lineCount"`
	Description  string   `json:"description"`
}

// CodeBlock is a fenced code span that was not already captured as an Artifact.
type CodeBlock Artifact

// ParseResult is everything extracted from one transcript.
// FileReferences, Dependencies, APIEndpoints and EnvironmentVars are
// reserved and always empty.
type ParseResult struct {
	Artifacts       []Artifact  `json:"artifacts"`
	CodeBlocks      []CodeBlock `json:"codeBlocks"`
	FileReferences  []string    `json:"fileReferences"`
	Dependencies    []string    `json:"dependencies"`
	APIEndpoints    []string    `json:"apiEndpoints"`
	EnvironmentVars []string    `json:"environmentVars"`
	Metadata        Metadata    `json:"metadata"`
}

// Metadata summarises a ParseResult.
type Metadata struct {
	TotalArtifacts       int              `json:"totalArtifacts"`
	Categories           map[Category]int `json:"categories"`
	Languages            []string         `json:"languages"`
	EstimatedComplexity  string           `json:"estimatedComplexity"`
	HasBackend           bool             `json:"hasBackend"`
	HasFrontend          bool             `json:"hasFrontend"`
	HasDocs              bool             `json:"hasDocs"`
	HasConfig            bool             `json:"hasConfig"`
	RecommendedStructure string           `json:"recommendedStructure"`
}

// Summary is the condensed view of Metadata returned alongside a parse.
type Summary struct {
	TotalArtifacts       int              `json:"totalArtifacts"`
	Categories           map[Category]int `json:"categories"`
	Languages            []string         `json:"languages"`
	Complexity           string           `json:"complexity"`
	RecommendedStructure string           `json:"recommendedStructure"`
	HasBackend           bool             `json:"hasBackend"`
	HasFrontend          bool             `json:"hasFrontend"`
}
