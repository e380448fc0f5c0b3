package teams

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
	"github.com/linearops/linear-mcp-server/internal/linear"
	"github.com/linearops/linear-mcp-server/internal/session"
)

func newTestHandler(t *testing.T, response string, calls *atomic.Int32) *Handler {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := session.NewProvider(
		session.WithLogger(logger),
		session.WithEnvLookup(func(name string) (string, bool) {
			if name == session.EnvAPIKey {
				return "lin_api_test", true
			}
			return "", false
		}),
		session.WithClientOptions(linear.WithEndpoint(server.URL), linear.WithLogger(logger)),
	)
	return NewHandler(sess, logger)
}

func TestGetTeams(t *testing.T) {
	h := newTestHandler(t, `{"data":{"teams":{"nodes":[
		{"id":"team-1","name":"Engineering","key":"ENG"},
		{"id":"team-2","name":"Design","key":"DES"}]}}}`, nil)

	result, err := h.GetTeams(context.Background(), GetTeamsArgs{})
	if err != nil {
		t.Fatalf("GetTeams failed: %v", err)
	}
	if result.TotalResults != 2 || result.Teams[0].Key != "ENG" {
		t.Errorf("result = %+v", result)
	}
}

func TestGetTeamsEmptyWorkspace(t *testing.T) {
	h := newTestHandler(t, `{"data":{"teams":{"nodes":[]}}}`, nil)

	result, err := h.GetTeams(context.Background(), GetTeamsArgs{})
	if err != nil {
		t.Fatalf("GetTeams failed: %v", err)
	}
	if result.Teams == nil || result.TotalResults != 0 {
		t.Errorf("empty workspace should yield an empty slice, got %+v", result)
	}
}

func TestGetTeamStates(t *testing.T) {
	h := newTestHandler(t, `{"data":{"team":{"states":{"nodes":[
		{"id":"st-1","name":"Backlog","type":"backlog"},
		{"id":"st-2","name":"Done","type":"completed"}]}}}}`, nil)

	result, err := h.GetTeamStates(context.Background(), GetTeamStatesArgs{TeamID: "team-1"})
	if err != nil {
		t.Fatalf("GetTeamStates failed: %v", err)
	}
	if len(result.States) != 2 || result.States[1].Type != "completed" {
		t.Errorf("result = %+v", result)
	}
	if result.TeamID != "team-1" {
		t.Errorf("TeamID = %q, want team-1", result.TeamID)
	}
}

func TestGetTeamStatesUnknownTeam(t *testing.T) {
	h := newTestHandler(t, `{"data":{"team":null}}`, nil)

	_, err := h.GetTeamStates(context.Background(), GetTeamStatesArgs{TeamID: "team-missing"})
	if !apierrors.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestGetTeamLabels(t *testing.T) {
	h := newTestHandler(t, `{"data":{"team":{"labels":{"nodes":[
		{"id":"lbl-1","name":"bug","color":"#eb5757"}]}}}}`, nil)

	result, err := h.GetTeamLabels(context.Background(), GetTeamLabelsArgs{TeamID: "team-1"})
	if err != nil {
		t.Fatalf("GetTeamLabels failed: %v", err)
	}
	if len(result.Labels) != 1 || result.Labels[0].Name != "bug" {
		t.Errorf("result = %+v", result)
	}
}

func TestTeamLookupsRequireTeamID(t *testing.T) {
	var calls atomic.Int32
	h := newTestHandler(t, `{}`, &calls)

	if _, err := h.GetTeamStates(context.Background(), GetTeamStatesArgs{}); !apierrors.IsValidation(err) {
		t.Errorf("GetTeamStates err = %v, want ValidationError", err)
	}
	if _, err := h.GetTeamLabels(context.Background(), GetTeamLabelsArgs{}); !apierrors.IsValidation(err) {
		t.Errorf("GetTeamLabels err = %v, want ValidationError", err)
	}
	if calls.Load() != 0 {
		t.Errorf("gateway calls = %d, want 0", calls.Load())
	}
}
