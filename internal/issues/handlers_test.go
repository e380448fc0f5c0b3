package issues

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
	"github.com/linearops/linear-mcp-server/internal/linear"
	"github.com/linearops/linear-mcp-server/internal/session"
)

// fakeGateway is an httptest GraphQL endpoint that counts calls and captures
// the last request.
type fakeGateway struct {
	server   *httptest.Server
	calls    int
	lastBody struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
}

func newFakeGateway(t *testing.T, respond func(query string) string) *fakeGateway {
	t.Helper()
	g := &fakeGateway{}
	g.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.calls++
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &g.lastBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(respond(g.lastBody.Query)))
	}))
	t.Cleanup(g.server.Close)
	return g
}

func newTestHandler(t *testing.T, g *fakeGateway) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := session.NewProvider(
		session.WithLogger(logger),
		session.WithEnvLookup(func(name string) (string, bool) {
			if name == session.EnvAPIKey {
				return "lin_api_test", true
			}
			return "", false
		}),
		session.WithClientOptions(linear.WithEndpoint(g.server.URL), linear.WithLogger(logger)),
	)
	return NewHandler(sess, logger)
}

func newUnauthenticatedHandler(t *testing.T, g *fakeGateway) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := session.NewProvider(
		session.WithLogger(logger),
		session.WithEnvLookup(func(string) (string, bool) { return "", false }),
		session.WithClientOptions(linear.WithEndpoint(g.server.URL), linear.WithLogger(logger)),
	)
	return NewHandler(sess, logger)
}

func emptyGateway(t *testing.T) *fakeGateway {
	return newFakeGateway(t, func(string) string { return `{"data":{}}` })
}

func TestCreateIssueMissingTitle(t *testing.T) {
	g := emptyGateway(t)
	h := newTestHandler(t, g)

	_, err := h.CreateIssue(context.Background(), CreateIssueArgs{TeamID: "team-1"})
	if !apierrors.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(err.Error(), "title") {
		t.Errorf("error %q should name the missing field", err.Error())
	}
	if g.calls != 0 {
		t.Errorf("gateway calls = %d, want 0", g.calls)
	}
}

func TestCreateIssueSuccess(t *testing.T) {
	g := newFakeGateway(t, func(string) string {
		return `{"data":{"issueCreate":{"success":true,"issue":{
			"id":"iss-1","identifier":"ENG-7","title":"Setup","url":"https://linear.app/acme/issue/ENG-7"}}}}`
	})
	h := newTestHandler(t, g)

	result, err := h.CreateIssue(context.Background(), CreateIssueArgs{Title: "Setup", TeamID: "team-1"})
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}

	text := result.Text()
	for _, want := range []string{"ENG-7", "Setup", "https://linear.app/acme/issue/ENG-7"} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() = %q, missing %q", text, want)
		}
	}
}

func TestCreateIssueGatewayRejection(t *testing.T) {
	g := newFakeGateway(t, func(string) string {
		return `{"data":{"issueCreate":{"success":false}}}`
	})
	h := newTestHandler(t, g)

	_, err := h.CreateIssue(context.Background(), CreateIssueArgs{Title: "Setup", TeamID: "team-1"})
	if err == nil {
		t.Fatal("expected error when gateway reports success=false")
	}
	if kind := apierrors.Classify(err); kind != apierrors.KindUpstream {
		t.Errorf("Classify = %q, want upstream", kind)
	}
}

func TestCreateIssuesIndexedValidation(t *testing.T) {
	g := emptyGateway(t)
	h := newTestHandler(t, g)

	_, err := h.CreateIssues(context.Background(), CreateIssuesArgs{Issues: []IssueInput{
		{Title: "ok", TeamID: "team-1"},
		{Title: "missing team"},
	}})
	if !apierrors.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(err.Error(), "index 1") {
		t.Errorf("error %q should name the failing index", err.Error())
	}
	if g.calls != 0 {
		t.Errorf("gateway calls = %d, want 0", g.calls)
	}
}

func TestCreateIssuesEmptyList(t *testing.T) {
	g := emptyGateway(t)
	h := newTestHandler(t, g)

	_, err := h.CreateIssues(context.Background(), CreateIssuesArgs{})
	if !apierrors.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(err.Error(), `"issues"`) {
		t.Errorf("error %q should include a corrective example", err.Error())
	}
	if g.calls != 0 {
		t.Errorf("gateway calls = %d, want 0", g.calls)
	}
}

func TestUpdateIssuesEmptyUpdate(t *testing.T) {
	g := emptyGateway(t)
	h := newTestHandler(t, g)

	_, err := h.UpdateIssues(context.Background(), UpdateIssuesArgs{IDs: []string{"iss-1"}})
	if !apierrors.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if g.calls != 0 {
		t.Errorf("gateway calls = %d, want 0", g.calls)
	}
}

func TestUpdateIssuesNotFoundSurfaces(t *testing.T) {
	g := newFakeGateway(t, func(string) string {
		return `{"errors":[{"message":"Entity not found: Issue","extensions":{"code":"ENTITY_NOT_FOUND"}}]}`
	})
	h := newTestHandler(t, g)

	title := "renamed"
	_, err := h.UpdateIssues(context.Background(), UpdateIssuesArgs{
		IDs:    []string{"iss-1", "iss-missing"},
		Update: UpdateFields{Title: &title},
	})
	if err == nil {
		t.Fatal("expected error, not a silent partial success")
	}
	if kind := apierrors.Classify(err); kind != apierrors.KindNotFound {
		t.Errorf("Classify = %q, want not_found", kind)
	}
}

func TestUpdateIssuesGatewayRejection(t *testing.T) {
	g := newFakeGateway(t, func(string) string {
		return `{"data":{"issueBatchUpdate":{"success":false}}}`
	})
	h := newTestHandler(t, g)

	title := "renamed"
	_, err := h.UpdateIssues(context.Background(), UpdateIssuesArgs{
		IDs:    []string{"iss-1"},
		Update: UpdateFields{Title: &title},
	})
	if err == nil {
		t.Fatal("expected error when gateway rejects the batch")
	}
	if !strings.Contains(err.Error(), "iss-1") {
		t.Errorf("error %q should name the affected ids", err.Error())
	}
}

func TestDeleteIssuesEmptyIDs(t *testing.T) {
	g := emptyGateway(t)
	h := newTestHandler(t, g)

	_, err := h.DeleteIssues(context.Background(), DeleteIssuesArgs{})
	if !apierrors.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(err.Error(), `"ids"`) {
		t.Errorf("error %q should include a corrective example", err.Error())
	}
	if g.calls != 0 {
		t.Errorf("gateway calls = %d, want 0", g.calls)
	}
}

func TestDeleteIssuesSuccess(t *testing.T) {
	g := newFakeGateway(t, func(string) string {
		return `{"data":{"d0":{"success":true},"d1":{"success":true}}}`
	})
	h := newTestHandler(t, g)

	result, err := h.DeleteIssues(context.Background(), DeleteIssuesArgs{IDs: []string{"iss-1", "iss-2"}})
	if err != nil {
		t.Fatalf("DeleteIssues failed: %v", err)
	}
	if len(result.Deleted) != 2 {
		t.Errorf("Deleted = %v, want 2 ids", result.Deleted)
	}
	if !strings.Contains(result.Text(), "Issues deleted: 2") {
		t.Errorf("Text() = %q", result.Text())
	}
}

func TestDeleteIssuesPartialFailure(t *testing.T) {
	g := newFakeGateway(t, func(string) string {
		return `{"data":{"d0":{"success":true},"d1":{"success":false}}}`
	})
	h := newTestHandler(t, g)

	_, err := h.DeleteIssues(context.Background(), DeleteIssuesArgs{IDs: []string{"iss-1", "iss-2"}})
	if err == nil {
		t.Fatal("expected partial failure to be reported")
	}
	if !apierrors.IsPartialFailure(err) {
		t.Fatalf("err = %v, want PartialFailureError", err)
	}
	for _, want := range []string{"iss-1", "iss-2"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should reference %q", err.Error(), want)
		}
	}
}

func searchResponse() string {
	return `{"data":{"issues":{"nodes":[
		{"id":"iss-1","identifier":"ENG-1","title":"Open one","url":"u1","state":{"id":"s1","name":"Todo","type":"unstarted"}},
		{"id":"iss-2","identifier":"ENG-2","title":"Done one","url":"u2","state":{"id":"s2","name":"Done","type":"completed"}},
		{"id":"iss-3","identifier":"ENG-3","title":"Canceled one","url":"u3","state":{"id":"s3","name":"Canceled","type":"canceled"}}
	]}}}`
}

func TestSearchIssuesExcludesArchivedByDefault(t *testing.T) {
	g := newFakeGateway(t, func(string) string { return searchResponse() })
	h := newTestHandler(t, g)

	result, err := h.SearchIssues(context.Background(), SearchIssuesArgs{Query: "one"})
	if err != nil {
		t.Fatalf("SearchIssues failed: %v", err)
	}
	if result.TotalResults != 1 {
		t.Fatalf("TotalResults = %d, want 1 (archived excluded)", result.TotalResults)
	}
	if result.Issues[0].Identifier != "ENG-1" {
		t.Errorf("kept issue = %q, want ENG-1", result.Issues[0].Identifier)
	}
}

func TestSearchIssuesIncludeArchived(t *testing.T) {
	g := newFakeGateway(t, func(string) string { return searchResponse() })
	h := newTestHandler(t, g)

	result, err := h.SearchIssues(context.Background(), SearchIssuesArgs{Query: "one", IncludeArchived: true})
	if err != nil {
		t.Fatalf("SearchIssues failed: %v", err)
	}
	if result.TotalResults != 3 {
		t.Errorf("TotalResults = %d, want 3 (nothing excluded)", result.TotalResults)
	}
}

func TestSearchIssuesDefaultLimit(t *testing.T) {
	g := newFakeGateway(t, func(string) string { return `{"data":{"issues":{"nodes":[]}}}` })
	h := newTestHandler(t, g)

	if _, err := h.SearchIssues(context.Background(), SearchIssuesArgs{Query: "anything"}); err != nil {
		t.Fatalf("SearchIssues failed: %v", err)
	}
	if first := g.lastBody.Variables["first"]; first != float64(DefaultSearchLimit) {
		t.Errorf("first = %v, want default %d", first, DefaultSearchLimit)
	}
}

func TestSearchIssuesNoMatchesIsText(t *testing.T) {
	g := newFakeGateway(t, func(string) string { return `{"data":{"issues":{"nodes":[]}}}` })
	h := newTestHandler(t, g)

	result, err := h.SearchIssues(context.Background(), SearchIssuesArgs{Query: "nothing matches this"})
	if err != nil {
		t.Fatalf("SearchIssues should not error on zero matches: %v", err)
	}
	if text := result.Text(); !strings.Contains(text, "No issues found") {
		t.Errorf("Text() = %q, want a descriptive no-matches message", text)
	}
}

func TestGetIssueNotFoundIsText(t *testing.T) {
	g := newFakeGateway(t, func(string) string { return `{"data":{"issue":null}}` })
	h := newTestHandler(t, g)

	result, err := h.GetIssue(context.Background(), GetIssueArgs{ID: "iss-missing"})
	if err != nil {
		t.Fatalf("GetIssue should not raise for a missing id: %v", err)
	}
	if result.Found {
		t.Error("Found = true for a missing issue")
	}
	want := `Issue with ID "iss-missing" does not exist`
	if result.Message != want {
		t.Errorf("Message = %q, want %q", result.Message, want)
	}
	if result.Text() != want {
		t.Errorf("Text() = %q, want %q", result.Text(), want)
	}
}

func TestNoSessionShortCircuits(t *testing.T) {
	g := emptyGateway(t)
	h := newUnauthenticatedHandler(t, g)

	_, err := h.CreateIssue(context.Background(), CreateIssueArgs{Title: "t", TeamID: "team-1"})
	if !apierrors.IsAuth(err) {
		t.Fatalf("err = %v, want AuthError", err)
	}
	if g.calls != 0 {
		t.Errorf("gateway calls = %d, want 0", g.calls)
	}
}

func TestIsArchivedState(t *testing.T) {
	tests := []struct {
		name  string
		state *linear.WorkflowState
		want  bool
	}{
		{"nil state", nil, false},
		{"unstarted", &linear.WorkflowState{Name: "Todo", Type: "unstarted"}, false},
		{"completed type", &linear.WorkflowState{Name: "Shipped", Type: "completed"}, true},
		{"canceled type", &linear.WorkflowState{Name: "Won't fix", Type: "canceled"}, true},
		{"archived name", &linear.WorkflowState{Name: "Archived", Type: "unstarted"}, true},
		{"duplicate name", &linear.WorkflowState{Name: "Duplicate", Type: "started"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsArchivedState(tt.state); got != tt.want {
				t.Errorf("IsArchivedState(%+v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}
