package report

// Limit applies the per-rule and same-message limits and returns the kept
// issues together with how many were dropped. Issues keep their order.
func Limit(issues []Issue, opts Options) ([]Issue, int) {
	originalCount := len(issues)

	if opts.MaxIssuesPerRule > 0 {
		issues = limitPerRule(issues, opts.MaxIssuesPerRule)
	}

	if opts.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, opts.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// limitPerRule keeps at most max issues for each rule.
func limitPerRule(issues []Issue, maxPerRule int) []Issue {
	seen := make(map[string]int)
	result := make([]Issue, 0, len(issues))

	for _, issue := range issues {
		rule := issue.Violation.Rule
		if seen[rule] < maxPerRule {
			result = append(result, issue)
			seen[rule]++
		}
	}

	return result
}

// deduplicateSameIssues limits how many times the same message is reported.
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	seen := make(map[string]int)
	result := make([]Issue, 0, len(issues))

	for _, issue := range issues {
		key := issue.Violation.Message
		if seen[key] < maxSame {
			result = append(result, issue)
			seen[key]++
		}
	}

	return result
}
