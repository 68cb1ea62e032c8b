package manifest

// Manifest is the top-level output of a qoiscope sweep.
type Manifest struct {
	Version     int        `json:"version"`
	GeneratedAt string     `json:"generated_at"`
	Source      string     `json:"source"`
	Profile     string     `json:"profile"`
	Width       int        `json:"width"`
	BuildInfo   *BuildInfo `json:"build_info,omitempty"`
	Passes      []Pass     `json:"passes"`
	Stats       Stats      `json:"stats"`
}

// BuildInfo captures sweep parameters for diagnostics.
type BuildInfo struct {
	Workers int    `json:"workers"`
	Format  string `json:"format"`
	Scale   int    `json:"scale"`
	Opaque  bool   `json:"opaque"`
}

// Pass describes one reconstruction at a given discard offset.
type Pass struct {
	Skip   int    `json:"skip"`
	Pixels int    `json:"pixels"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Digest string `json:"digest,omitempty"` // xxhash64 of the pixel buffer
	Path   string `json:"path,omitempty"`   // relative to the manifest
	Size   int64  `json:"size,omitempty"`   // bytes on disk
	Error  string `json:"error,omitempty"`
}

// Stats aggregates sweep metrics.
type Stats struct {
	TotalPasses    int   `json:"total_passes"`
	FailedPasses   int   `json:"failed_passes"`
	EmptyPasses    int   `json:"empty_passes"`    // no complete row survived the discard
	DistinctFrames int   `json:"distinct_frames"` // unique digests
	TotalBytes     int64 `json:"total_bytes"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside a sweep directory.
const FileName = "qoiscope.manifest.json"
