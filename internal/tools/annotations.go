package tools

// ReadOnlyAnnotations fits every console query: nothing is modified and
// the answer comes from the Director, outside this process.
func ReadOnlyAnnotations() map[string]bool {
	return map[string]bool{
		"readOnlyHint":    true,
		"destructiveHint": false,
		"idempotentHint":  true,
		"openWorldHint":   true,
	}
}
