package issues

import (
	"fmt"

	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
)

// MaxBatchSize caps the number of issues in one batched call.
const MaxBatchSize = 50

// ValidateCreateIssue checks arguments for a single issue creation.
func ValidateCreateIssue(args CreateIssueArgs) error {
	if args.Title == "" {
		return apierrors.NewValidationError("title", "title is required")
	}
	if args.TeamID == "" {
		return apierrors.NewValidationError("teamId", "teamId is required")
	}
	return validatePriority("priority", args.Priority)
}

// ValidateIssueInputs checks a batch of issue inputs: the list must be
// non-empty and every item needs a title and a teamId. Failing items are
// named by their 0-based index.
func ValidateIssueInputs(field string, inputs []IssueInput) error {
	if len(inputs) == 0 {
		return apierrors.NewValidationError(field,
			fmt.Sprintf(`%s must be a non-empty array of issues, e.g. {"%s": [{"title": "Fix login", "teamId": "team-id"}]}`, field, field))
	}
	if len(inputs) > MaxBatchSize {
		return apierrors.NewValidationError(field,
			fmt.Sprintf("%s exceeds the maximum batch size of %d", field, MaxBatchSize))
	}
	for i, input := range inputs {
		if input.Title == "" {
			return apierrors.NewValidationError(
				fmt.Sprintf("%s[%d].title", field, i),
				fmt.Sprintf("issue at index %d is missing required title", i))
		}
		if input.TeamID == "" {
			return apierrors.NewValidationError(
				fmt.Sprintf("%s[%d].teamId", field, i),
				fmt.Sprintf("issue at index %d is missing required teamId", i))
		}
		if err := validatePriority(fmt.Sprintf("%s[%d].priority", field, i), input.Priority); err != nil {
			return err
		}
	}
	return nil
}

// ValidateIDs checks a required non-empty list of entity identifiers. The
// message carries a corrective example since the caller is a program, not a
// human.
func ValidateIDs(field string, ids []string) error {
	if len(ids) == 0 {
		return apierrors.NewValidationError(field,
			fmt.Sprintf(`%s must be a non-empty array of issue IDs, e.g. {"%s": ["issue-id-1", "issue-id-2"]}`, field, field))
	}
	for i, id := range ids {
		if id == "" {
			return apierrors.NewValidationError(
				fmt.Sprintf("%s[%d]", field, i),
				fmt.Sprintf("id at index %d is empty", i))
		}
	}
	return nil
}

// ValidateUpdateIssues checks arguments for a bulk update: a non-empty id
// list and at least one field to change.
func ValidateUpdateIssues(args UpdateIssuesArgs) error {
	if err := ValidateIDs("ids", args.IDs); err != nil {
		return err
	}
	u := args.Update
	if u.Title == nil && u.Description == nil && u.StateID == nil &&
		u.AssigneeID == nil && u.Priority == nil && u.LabelIDs == nil {
		return apierrors.NewValidationError("update",
			`update must set at least one field, e.g. {"update": {"stateId": "state-id"}}`)
	}
	return validatePriority("update.priority", u.Priority)
}

// ValidateGetIssue checks arguments for a single issue lookup.
func ValidateGetIssue(args GetIssueArgs) error {
	if args.ID == "" {
		return apierrors.NewValidationError("id", "id is required")
	}
	return nil
}

func validatePriority(field string, p *int) error {
	if p == nil {
		return nil
	}
	if *p < 0 || *p > 4 {
		return apierrors.NewValidationError(field,
			fmt.Sprintf("priority must be between 0 (none) and 4 (low), got %d", *p))
	}
	return nil
}
