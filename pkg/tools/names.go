package tools

// Tool names form a closed set; the agent and the registry discriminate on
// these.
const (
	WebSearchToolName   = "search_web"
	ImageSearchToolName = "search_image"
	WritePostToolName   = "write_post"
	ReadPostToolName    = "read_post"
)
