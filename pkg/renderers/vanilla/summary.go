package vanilla

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstep/pkg/model"
)

var (
	summaryPolicyOnce sync.Once
	summaryPolicy     *bluemonday.Policy
)

// SummaryHTML builds the review fragment, one paragraph per field, and runs it
// through a policy that only admits <p> and <strong>.
func SummaryHTML(summary model.Summary) string {
	if len(summary) == 0 {
		return ""
	}
	var b strings.Builder
	for _, item := range summary {
		b.WriteString("<p><strong>")
		b.WriteString(html.EscapeString(item.Label))
		b.WriteString(":</strong> ")
		b.WriteString(html.EscapeString(item.Value))
		b.WriteString("</p>")
	}
	return strings.TrimSpace(summarySanitizer().Sanitize(b.String()))
}

func summarySanitizer() *bluemonday.Policy {
	summaryPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("p", "strong")
		summaryPolicy = policy
	})
	return summaryPolicy
}
