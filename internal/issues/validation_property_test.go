package issues

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
)

// Property-based checks for the batch validators: whatever the shape of the
// input, a rejected batch must name a field and never pass silently.

func TestIssueInputValidationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("complete inputs always validate", prop.ForAll(
		func(titles []string) bool {
			inputs := make([]IssueInput, 0, len(titles))
			for _, title := range titles {
				inputs = append(inputs, IssueInput{Title: "t-" + title, TeamID: "team-1"})
			}
			if len(inputs) == 0 || len(inputs) > MaxBatchSize {
				return true // covered by dedicated cases below
			}
			return ValidateIssueInputs("issues", inputs) == nil
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("a missing teamId is rejected with its index", prop.ForAll(
		func(prefix int, title string) bool {
			if prefix < 0 {
				prefix = -prefix
			}
			prefix %= 10
			inputs := make([]IssueInput, 0, prefix+1)
			for i := 0; i < prefix; i++ {
				inputs = append(inputs, IssueInput{Title: "ok", TeamID: "team-1"})
			}
			inputs = append(inputs, IssueInput{Title: "t-" + title})

			err := ValidateIssueInputs("issues", inputs)
			if !apierrors.IsValidation(err) {
				return false
			}
			return strings.Contains(err.Error(), fmt.Sprintf("index %d", prefix))
		},
		gen.Int(),
		gen.Identifier(),
	))

	properties.Property("empty id lists never validate", prop.ForAll(
		func(field string) bool {
			err := ValidateIDs(field, nil)
			return apierrors.IsValidation(err) && strings.Contains(err.Error(), field)
		},
		gen.OneConstOf("ids", "issueIds"),
	))

	properties.Property("out-of-range priorities are rejected", prop.ForAll(
		func(p int) bool {
			err := ValidateCreateIssue(CreateIssueArgs{Title: "t", TeamID: "team-1", Priority: &p})
			inRange := p >= 0 && p <= 4
			return (err == nil) == inRange
		},
		gen.IntRange(-10, 10),
	))

	properties.TestingRun(t)
}
