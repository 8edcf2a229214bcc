package types

// EngineConfig holds the tunable constants of the inference engine. The
// zero value is usable; Normalized fills in defaults.
type EngineConfig struct {
	// SimilarityThreshold is the minimum token-set (Jaccard) similarity
	// between two normalized keys for their files to merge into one group
	// (default 0.55). Chosen so three shared publisher+subject+grade tokens
	// outweigh one leftover chapter-remnant token.
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	// ShortKeyTokens is the maximum token count at which the grouper also
	// tries an edit-distance comparison, since token-set similarity is
	// unstable on one- or two-token keys (default 2).
	ShortKeyTokens int `json:"short_key_tokens" yaml:"short_key_tokens"`

	// EditSimilarityThreshold is the minimum Levenshtein similarity ratio
	// for the short-key fallback (default 0.8).
	EditSimilarityThreshold float64 `json:"edit_similarity_threshold" yaml:"edit_similarity_threshold"`

	// ConsistencyWeight scales the fraction of files whose normalized key
	// equals the group's representative key (default 0.40).
	ConsistencyWeight float64 `json:"consistency_weight" yaml:"consistency_weight"`

	// AgreementWeight scales the fraction of expected fields (publisher,
	// subject, grade) extracted and agreeing across the group (default 0.35).
	AgreementWeight float64 `json:"agreement_weight" yaml:"agreement_weight"`

	// ExtractionWeight scales the mean per-field extraction confidence
	// (default 0.25).
	ExtractionWeight float64 `json:"extraction_weight" yaml:"extraction_weight"`

	// MaxParallel bounds concurrent per-file extraction (default 8).
	// Extraction order never affects the output.
	MaxParallel int `json:"max_parallel" yaml:"max_parallel"`
}

// Normalized returns a copy of the config with defaults applied to unset
// fields.
func (c EngineConfig) Normalized() EngineConfig {
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = 0.55
	}
	if c.ShortKeyTokens <= 0 {
		c.ShortKeyTokens = 2
	}
	if c.EditSimilarityThreshold <= 0 {
		c.EditSimilarityThreshold = 0.8
	}
	if c.ConsistencyWeight <= 0 && c.AgreementWeight <= 0 && c.ExtractionWeight <= 0 {
		c.ConsistencyWeight = 0.40
		c.AgreementWeight = 0.35
		c.ExtractionWeight = 0.25
	}
	if c.MaxParallel <= 0 {
		c.MaxParallel = 8
	}
	return c
}

// CatalogConfig holds settings for the confirmed-hierarchy catalog.
type CatalogConfig struct {
	// CatalogDir is the directory holding the catalog database file.
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`
}
