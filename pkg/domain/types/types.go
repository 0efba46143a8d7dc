package types

// Version is overwritten at build time via -ldflags.
var Version = "dev"

// DefaultContentType is used when a file's content type cannot be determined.
const DefaultContentType = "application/octet-stream"
