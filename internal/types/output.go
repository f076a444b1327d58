package types

// DiscoveredSchema pairs a version string with the type graph loaded for
// it from a schema tree on disk.
type DiscoveredSchema struct {
	Version string
	Graph   TypeGraph
}

// SyncRecord describes the outcome of uploading one schema version to a
// remote registry subject.
type SyncRecord struct {
	Version       string `yaml:"version"`
	SchemaID      string `yaml:"schema_id"`
	RemoteVersion int    `yaml:"remote_version"`
	Status        string `yaml:"status"`
}

// SyncReport is the YAML document written after a sync run.
type SyncReport struct {
	Subject  string       `yaml:"subject"`
	Registry string       `yaml:"registry"`
	Records  []SyncRecord `yaml:"records"`
}

// RoundTripResult summarizes a packet archive round-trip check.
type RoundTripResult struct {
	SchemaVersion string
	PacketCount   int
	MatchCount    int
}
