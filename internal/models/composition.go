package models

// ComposeRequest wraps the parameters of a single composition run
type ComposeRequest struct {
	Seed      *Seed  `json:"seed,omitempty"` // Optional fixed seed for reproducible re-renders
	OutputDir string `json:"output_dir"`

	// Session leader selection
	Provider string `json:"provider"` // "gemini" or "openai"
	Model    string `json:"model"`

	SkipEntropy bool `json:"skip_entropy"` // Don't contact the external entropy source
}

// ComposeResult describes a finished piece
type ComposeResult struct {
	RunID      string        `json:"run_id"`
	Seed       Seed          `json:"seed"`
	Params     SessionParams `json:"params"`
	OutputPath string        `json:"output_path"`
	Bars       int           `json:"bars"`
	Samples    int           `json:"samples"`
	Peak       float64       `json:"peak"`
	RMS        float64       `json:"rms"`
}
