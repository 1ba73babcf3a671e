package domain

// AssertionResult is the output of a single page check.
type AssertionResult struct {
	Name    string
	Passed  bool
	Message string
}

// ExtractSpec maps a variable name to a pattern with one capture group.
type ExtractSpec map[string]string

// ExtractResult reports a single extraction rule.
type ExtractResult struct {
	Name    string
	Success bool
	Message string
}
