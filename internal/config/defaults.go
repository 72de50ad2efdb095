package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/terasu/data/db/documents.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "/usr/local/var/terasu/data/indices/bleve"
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.TopKCandidates == 0 {
		cfg.Search.TopKCandidates = 50
	}
	if cfg.Search.TitleBoost == 0 {
		cfg.Search.TitleBoost = 10.0
	}
	if cfg.Search.PhraseBoost == 0 {
		cfg.Search.PhraseBoost = 2.0
	}
	if cfg.Search.MaxSnippets == 0 {
		cfg.Search.MaxSnippets = 3
	}
	if cfg.Search.ContextWords == 0 {
		cfg.Search.ContextWords = 8
	}
	if cfg.Search.PreTag == "" {
		cfg.Search.PreTag = "<em>"
	}
	if cfg.Search.PostTag == "" {
		cfg.Search.PostTag = "</em>"
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".hocr", ".xml", ".html", ".txt", ".md", ".pdf", ".docx", ".odt", ".rtf", ".xlsx"}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
