package parser

// generateMetadata derives the aggregate view of one parse. dependencyMentions
// is the size of the transcript-level dependency list.
func generateMetadata(artifacts []Artifact, codeBlocks []CodeBlock, dependencyMentions int) Metadata {
	categories := make(map[Category]int)
	languages := []string{}
	seen := make(map[string]bool)

	add := func(c Category, lang string) {
		categories[c]++
		if !seen[lang] {
			seen[lang] = true
			languages = append(languages, lang)
		}
	}
	for _, a := range artifacts {
		add(a.Category, a.Language)
	}
	for _, b := range codeBlocks {
		add(b.Category, b.Language)
	}

	total := len(artifacts) + len(codeBlocks)
	hasBackend := categories[CategoryBackend] > 0
	hasFrontend := categories[CategoryFrontend] > 0

	return Metadata{
		TotalArtifacts:       total,
		Categories:           categories,
		Languages:            languages,
		EstimatedComplexity:  estimateComplexity(total, dependencyMentions),
		HasBackend:           hasBackend,
		HasFrontend:          hasFrontend,
		HasDocs:              categories[CategoryDocs] > 0,
		HasConfig:            categories[CategoryConfig] > 0,
		RecommendedStructure: recommendStructure(hasBackend, hasFrontend, total),
	}
}

func estimateComplexity(totalItems, depCount int) string {
	switch {
	case totalItems > 10 || depCount > 20:
		return ComplexityHigh
	case totalItems > 5 || depCount > 10:
		return ComplexityMedium
	}
	return ComplexityLow
}

func recommendStructure(hasBackend, hasFrontend bool, totalItems int) string {
	switch {
	case hasBackend && hasFrontend:
		return StructureFullstack
	case hasFrontend:
		return StructureFrontendOnly
	case hasBackend:
		return StructureBackendOnly
	case totalItems > 5:
		return StructureMultiModule
	}
	return StructureSimple
}

// Summary returns the condensed view sent back to API callers and published on the bus.
func (m Metadata) Summary() Summary {
	return Summary{
		TotalArtifacts:       m.TotalArtifacts,
		Categories:           m.Categories,
		Languages:            m.Languages,
		Complexity:           m.EstimatedComplexity,
		RecommendedStructure: m.RecommendedStructure,
		HasBackend:           m.HasBackend,
		HasFrontend:          m.HasFrontend,
	}
}
