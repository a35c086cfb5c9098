package version

const (
	Name    = "bareos-mcp-server"
	Version = "0.1.0"

	// ProtocolVersion is the MCP revision this server speaks. It is
	// returned as-is from initialize, whatever the client asked for.
	ProtocolVersion = "2024-11-05"
)
