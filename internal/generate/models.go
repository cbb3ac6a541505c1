package generate

// Job is one URL queued for generation.
type Job struct {
	URL string
}

// Result is the per-URL outcome a worker reports back.
type Result struct {
	URL        string `json:"url"`
	EntityID   int64  `json:"entity_id,omitempty"`
	Status     string `json:"status"`
	Cached     bool   `json:"cached,omitempty"`
	FilePath   string `json:"file_path,omitempty"`
	ErrorType  string `json:"error_type,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
}

// Stats summarizes one run.
type Stats struct {
	TotalURLs        int     `json:"total_urls"`
	Successful       int     `json:"successful"`
	Failed           int     `json:"failed"`
	Cached           int     `json:"cached"`
	TotalTimeSeconds float64 `json:"total_time_seconds"`
}

// FinalOutput is the JSON document the generate command prints to stdout.
type FinalOutput struct {
	Status  string   `json:"status"`
	Results []Result `json:"results"`
	Stats   Stats    `json:"stats"`
}
