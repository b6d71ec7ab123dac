package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateComplexity(t *testing.T) {
	assert.Equal(t, ComplexityLow, estimateComplexity(0, 0))
	assert.Equal(t, ComplexityLow, estimateComplexity(5, 10))
	assert.Equal(t, ComplexityMedium, estimateComplexity(6, 0))
	assert.Equal(t, ComplexityMedium, estimateComplexity(0, 11))
	assert.Equal(t, ComplexityMedium, estimateComplexity(10, 20))
	assert.Equal(t, ComplexityHigh, estimateComplexity(11, 0))
	assert.Equal(t, ComplexityHigh, estimateComplexity(0, 21))
}

func TestRecommendStructure(t *testing.T) {
	assert.Equal(t, StructureFullstack, recommendStructure(true, true, 2))
	assert.Equal(t, StructureFullstack, recommendStructure(true, true, 100))
	assert.Equal(t, StructureFrontendOnly, recommendStructure(false, true, 20))
	assert.Equal(t, StructureBackendOnly, recommendStructure(true, false, 20))
	assert.Equal(t, StructureMultiModule, recommendStructure(false, false, 6))
	assert.Equal(t, StructureSimple, recommendStructure(false, false, 5))
}

func TestGenerateMetadata(t *testing.T) {
	artifacts := []Artifact{
		{Category: CategoryDocs, Language: LanguageMarkdown},
		{Category: CategoryConfig, Language: LanguageText},
		{Category: CategoryDocs, Language: LanguageMarkdown},
	}
	blocks := []CodeBlock{
		{Category: CategoryMisc, Language: "go"},
		{Category: CategoryMisc, Language: LanguageText},
	}

	m := generateMetadata(artifacts, blocks, 0)

	assert.Equal(t, 5, m.TotalArtifacts)
	assert.Equal(t, map[Category]int{CategoryDocs: 2, CategoryConfig: 1, CategoryMisc: 2}, m.Categories)
	assert.Equal(t, []string{LanguageMarkdown, LanguageText, "go"}, m.Languages)
	assert.True(t, m.HasDocs)
	assert.True(t, m.HasConfig)
	assert.False(t, m.HasBackend)
	assert.False(t, m.HasFrontend)
	assert.Equal(t, ComplexityLow, m.EstimatedComplexity)
	assert.Equal(t, StructureSimple, m.RecommendedStructure)
}

func TestGenerateMetadata_DependencyMentions(t *testing.T) {
	m := generateMetadata(nil, nil, 21)
	assert.Equal(t, ComplexityHigh, m.EstimatedComplexity)
	assert.Equal(t, 0, m.TotalArtifacts)
}

func TestMetadataSummary(t *testing.T) {
	m := Metadata{
		TotalArtifacts:       2,
		Categories:           map[Category]int{CategoryFrontend: 1, CategoryBackend: 1},
		Languages:            []string{LanguageJavaScript},
		EstimatedComplexity:  ComplexityLow,
		HasBackend:           true,
		HasFrontend:          true,
		HasDocs:              false,
		RecommendedStructure: StructureFullstack,
	}

	s := m.Summary()
	assert.Equal(t, 2, s.TotalArtifacts)
	assert.Equal(t, ComplexityLow, s.Complexity)
	assert.Equal(t, StructureFullstack, s.RecommendedStructure)
	assert.True(t, s.HasBackend)
	assert.True(t, s.HasFrontend)
	assert.Equal(t, m.Categories, s.Categories)
	assert.Equal(t, m.Languages, s.Languages)
}
