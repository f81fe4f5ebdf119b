package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	root := NewRootCmd("1.0.0", "2026-08-29")
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func newStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/sign_in", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer tok-123")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{
				"id": "7", "first_name": "Ada", "last_name": "Obi",
				"email": "a@b.co", "telephone": "08011112222",
			},
		})
	})
	mux.HandleFunc("DELETE /users/sign_out", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/v1/properties/count", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int{"count": 3})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestVersion(t *testing.T) {
	out := run(t, "version")
	if !strings.Contains(out, "pbs 1.0.0") {
		t.Fatalf("version output %q", out)
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	srv := newStub(t)
	state := t.TempDir()

	out := run(t, "--server", srv.URL, "--state-dir", state,
		"auth", "login", "--email", "a@b.co", "--password", "pw12345")
	if !strings.Contains(out, "Signed in as Ada Obi") || !strings.Contains(out, "/dashboard") {
		t.Fatalf("login output %q", out)
	}

	out = run(t, "--server", srv.URL, "--state-dir", state, "auth", "whoami")
	if !strings.Contains(out, "Ada Obi <a@b.co> (id 7)") {
		t.Fatalf("whoami output %q", out)
	}

	out = run(t, "--server", srv.URL, "--state-dir", state, "properties", "count")
	if !strings.Contains(out, "3 listing(s)") {
		t.Fatalf("count output %q", out)
	}

	out = run(t, "--server", srv.URL, "--state-dir", state, "auth", "logout")
	if !strings.Contains(out, "Signed out") || !strings.Contains(out, "/signin") {
		t.Fatalf("logout output %q", out)
	}

	out = run(t, "--server", srv.URL, "--state-dir", state, "auth", "whoami")
	if !strings.Contains(out, "Not signed in") {
		t.Fatalf("whoami after logout %q", out)
	}
}

func TestCountRequiresSession(t *testing.T) {
	srv := newStub(t)
	root := NewRootCmd("1.0.0", "2026-08-29")
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"--server", srv.URL, "--state-dir", t.TempDir(), "properties", "count"})
	if err := root.Execute(); err == nil {
		t.Fatal("count without a session must fail")
	}
}
