// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultCardsDir is the vault subfolder that holds card notes.
	DefaultCardsDir = "Cards"

	// DefaultImage is the frame image assigned to every card.
	DefaultImage = "assets/frame.png"

	// DefaultPageSize fills a 3x3 grid on one printed sheet.
	DefaultPageSize = 9

	// DefaultRendererImage is the container image used by the render stage.
	DefaultRendererImage = "card-renderer:latest"
)

// ExtractConfig holds settings for the extraction stage.
type ExtractConfig struct {
	// VaultPath is the root of the note vault.
	VaultPath string `json:"vault_path" yaml:"vault_path"`

	// CardsDir is the subfolder of VaultPath searched for notes (default "Cards").
	CardsDir string `json:"cards_dir" yaml:"cards_dir"`

	// DefaultImage is the image path assigned to every card (default "assets/frame.png").
	DefaultImage string `json:"default_image" yaml:"default_image"`

	// Strict aborts the run on the first unreadable note instead of skipping it.
	Strict bool `json:"strict" yaml:"strict"`

	// Resources adds or overrides cost abbreviations, keyed by resource name
	// (e.g. "crystal": "Cr").
	Resources map[string]string `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// SheetConfig holds settings for the pagination stage.
type SheetConfig struct {
	// PageSize is the number of cards on one sheet (default 9).
	PageSize int `json:"page_size" yaml:"page_size"`
}

// IndexConfig holds settings for the card index.
type IndexConfig struct {
	// IndexDir is the directory that contains cards.db.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// RenderConfig holds settings for the external renderer.
type RenderConfig struct {
	// Image is the renderer container image (default "card-renderer:latest").
	Image string `json:"image" yaml:"image"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Sheets  SheetConfig   `json:"sheets" yaml:"sheets"`
	Index   IndexConfig   `json:"index" yaml:"index"`
	Render  RenderConfig  `json:"render" yaml:"render"`
}
