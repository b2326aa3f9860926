package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vidi0/scratch-io/pkg/encoding"
)

// testClient creates a client whose v2 base URL points at a test server.
func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient("test-key", nil)
	client.httpClient = server.Client()

	// Rewrite requests to the test server.
	client.httpClient.Transport = &rewriteTransport{
		underlying: http.DefaultTransport,
		target:     server.URL,
	}
	return client
}

// rewriteTransport redirects all requests to a fixed target host, preserving
// their paths.
type rewriteTransport struct {
	underlying http.RoundTripper
	target     string
}

// RoundTrip implements http.RoundTripper.RoundTrip.
func (t *rewriteTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	rewritten, err := http.NewRequestWithContext(
		request.Context(), request.Method, t.target+request.URL.Path, request.Body,
	)
	if err != nil {
		return nil, err
	}
	rewritten.Header = request.Header
	rewritten.URL.RawQuery = request.URL.RawQuery
	rewritten.ContentLength = request.ContentLength
	return t.underlying.RoundTrip(rewritten)
}

// TestClientAuthentication verifies that v2 requests carry the raw key and
// the v2 accept header.
func TestClientAuthentication(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "test-key" {
			t.Error("v2 request missing raw key authorization")
		}
		if r.Header.Get("Accept") != "application/vnd.itch.v2" {
			t.Error("v2 request missing accept header")
		}
		w.Write([]byte(`{"user": {"id": 1, "username": "tester"}}`))
	}))

	profile, err := client.Profile(context.Background())
	if err != nil {
		t.Fatal("unable to get profile:", err)
	}
	if profile.Username != "tester" {
		t.Error("profile username mismatch:", profile.Username)
	}
}

// TestClientErrorEnvelope verifies that server-side error envelopes surface
// as request errors.
func TestClientErrorEnvelope(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": ["invalid key"]}`))
	}))

	_, err := client.Profile(context.Background())
	requestErr := &RequestError{}
	if !errors.As(err, &requestErr) {
		t.Fatal("server error didn't surface as request error:", err)
	}
	if len(requestErr.Errors) != 1 || requestErr.Errors[0] != "invalid key" {
		t.Error("request error contents mismatch:", requestErr.Errors)
	}
}

// TestClientPagination verifies that paginated endpoints are walked to
// completion.
func TestClientPagination(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(`{"page": 1, "per_page": 2, "owned_keys": [
				{"id": 1, "game_id": 10}, {"id": 2, "game_id": 20}
			]}`))
		case "2":
			w.Write([]byte(`{"page": 2, "per_page": 2, "owned_keys": [
				{"id": 3, "game_id": 30}
			]}`))
		default:
			t.Error("unexpected page requested:", r.URL.Query().Get("page"))
			w.Write([]byte(`{"owned_keys": []}`))
		}
	}))

	keys, err := client.OwnedKeys(context.Background())
	if err != nil {
		t.Fatal("unable to list owned keys:", err)
	}
	if len(keys) != 3 {
		t.Error("owned key count mismatch:", len(keys))
	}
}

// TestListToleratesEmptyObject verifies that empty-object list encodings
// decode as empty lists.
func TestListToleratesEmptyObject(t *testing.T) {
	var list List[string]
	if err := encoding.UnmarshalJSON([]byte(`{}`), &list); err != nil {
		t.Fatal("unable to decode empty object as list:", err)
	}
	if len(list) != 0 {
		t.Error("empty object didn't decode as empty list")
	}
	if err := encoding.UnmarshalJSON([]byte(`["a", "b"]`), &list); err != nil {
		t.Fatal("unable to decode array as list:", err)
	}
	if len(list) != 2 {
		t.Error("array didn't decode as list")
	}
}

// TestParentBuildIDTolerance verifies that unrecognized parent build
// identifier values decode as "no parent".
func TestParentBuildIDTolerance(t *testing.T) {
	build := &Build{}
	if err := encoding.UnmarshalJSON(
		[]byte(`{"id": 5, "parent_build_id": {"error": "no parent"}}`), build,
	); err != nil {
		t.Fatal("unable to decode build with error-token parent:", err)
	}
	if build.ParentBuildID != 0 {
		t.Error("error-token parent didn't decode as no parent")
	}
	if err := encoding.UnmarshalJSON(
		[]byte(`{"id": 5, "parent_build_id": 4}`), build,
	); err != nil {
		t.Fatal("unable to decode build with integer parent:", err)
	}
	if build.ParentBuildID != 4 {
		t.Error("integer parent mismatch:", build.ParentBuildID)
	}
}

// TestLoginTOTPRequired verifies that a two-factor challenge surfaces as a
// typed error carrying the verification token.
func TestLoginTOTPRequired(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Error("unable to parse login form:", err)
		}
		if r.PostForm.Get("username") != "tester" {
			t.Error("login form missing username")
		}
		w.Write([]byte(`{"success": true, "totp_needed": true, "token": "totp-token"}`))
	}))

	_, err := client.Login(context.Background(), "tester", "hunter2", "")
	totpErr, ok := err.(*TOTPRequiredError)
	if !ok {
		t.Fatal("two-factor challenge didn't surface as typed error:", err)
	}
	if totpErr.Token != "totp-token" {
		t.Error("two-factor token mismatch:", totpErr.Token)
	}
}

// TestUploadPlatforms verifies platform interpretation from upload type and
// traits.
func TestUploadPlatforms(t *testing.T) {
	upload := &Upload{
		Type:   UploadTypeHTML,
		Traits: List[string]{UploadTraitPlatformLinux, UploadTraitPlatformWindows},
	}
	platforms := upload.Platforms()
	if len(platforms) != 3 {
		t.Fatal("platform count mismatch:", platforms)
	}
	if platforms[0] != PlatformWeb || platforms[1] != PlatformLinux || platforms[2] != PlatformWindows {
		t.Error("platform interpretation mismatch:", platforms)
	}
}
