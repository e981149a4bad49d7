package classify

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/puneetripathi/bajaj-frontend/pkg/renderers/text"
)

func TestMountPath(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{base: "", want: "/"},
		{base: "/", want: "/"},
		{base: "tools", want: "/tools/"},
		{base: "/tools/", want: "/tools/"},
	}
	for _, tc := range cases {
		if got := MountPath(tc.base); got != tc.want {
			t.Fatalf("MountPath(%q): want %q, got %q", tc.base, tc.want, got)
		}
	}
	if got := APIMountPath("/tools"); got != "/tools/api/classify" {
		t.Fatalf("unexpected api mount %q", got)
	}
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	mounts, err := New(WithRenderer(text.New())).RegisterRoutes(mux, "/tools")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if mounts.Page != "/tools/" || mounts.API != "/tools/api/classify" {
		t.Fatalf("unexpected mounts %+v", mounts)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tools/api/classify", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected api handler to answer 405 on GET, got %d", rec.Code)
	}

	if _, err := RegisterRoutes(nil, ""); err == nil {
		t.Fatalf("expected missing mux error")
	}
	if _, err := RegisterRoutes(http.NewServeMux(), "", WithAPIPath("/")); err == nil {
		t.Fatalf("expected shared path error")
	}
}
