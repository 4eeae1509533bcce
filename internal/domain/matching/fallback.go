package matching

import (
	"fmt"
	"math"
	"strings"
)

// Result is a scored comparison of one resume against one job.
type Result struct {
	Percentage  int
	Explanation string
}

// Fallback scores a resume against a job by keyword overlap. It is the
// deterministic stand-in used when the AI scorer is unavailable: pure,
// no I/O, never fails.
//
// A job skill counts as matched when any resume skill contains it or is
// contained by it, case-insensitively. The containment is deliberately
// bidirectional so "React" still matches "ReactJS".
//
// A job with no skills listed scores 0: the denominator floors at 1 and
// there is nothing to match against.
func Fallback(jobSkills, resumeSkills []string) Result {
	job := normalizeSkills(jobSkills)
	resume := normalizeSkills(resumeSkills)

	matchCount := 0
	matched := make([]string, 0, len(job))

	for _, js := range job {
		for _, rs := range resume {
			if strings.Contains(rs, js) || strings.Contains(js, rs) {
				matchCount++
				matched = append(matched, rs)
				break
			}
		}
	}

	total := len(job)
	if total < 1 {
		total = 1
	}

	percentage := int(math.Round(float64(matchCount) / float64(total) * 100))
	if percentage > 100 {
		percentage = 100
	}

	matchedList := strings.Join(matched, ", ")
	if matchedList == "" {
		matchedList = "None"
	}

	explanation := fmt.Sprintf(
		"This is an automated match using AI service. Based on keyword matching, found %d skill matches out of %d required skills. Matched skills: %s.",
		matchCount, total, matchedList,
	)

	return Result{Percentage: percentage, Explanation: explanation}
}

// normalizeSkills lowercases and trims every entry, splitting entries that
// are themselves comma-delimited lists. Empty entries are dropped.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, raw := range skills {
		for _, part := range strings.Split(raw, ",") {
			s := strings.ToLower(strings.TrimSpace(part))
			if s == "" {
				continue
			}
			out = append(out, s)
		}
	}
	return out
}
