package domain

// EvidenceReader reads artifact text. Absence is reported through
// Source.Found, never as an error.
type EvidenceReader interface {
	Read(path string) Source
	// Latest returns the most recently modified file in dir whose base name
	// matches glob.
	Latest(dir, glob string) (string, bool)
}

// ConfigLoader loads the project's audit configuration.
type ConfigLoader interface {
	Load(projectPath string) (AuditConfig, error)
}

// RunHistory persists run summaries per project.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// GitInfo resolves the audited project's current commit.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
}

// ReportWriter persists a rendered report.
type ReportWriter interface {
	Write(path, content string) error
}
