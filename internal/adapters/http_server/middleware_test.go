package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteIP(t *testing.T) {
	cases := []struct {
		name string
		hdr  map[string]string
		addr string
		want string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.2.3.4:80", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.9"}, "1.2.3.4:80", "10.0.0.9"},
		{"remote addr", nil, "1.2.3.4:80", "1.2.3.4"},
		{"no port", nil, "1.2.3.4", "1.2.3.4"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = c.addr
			for k, v := range c.hdr {
				r.Header.Set(k, v)
			}
			if got := remoteIP(r); got != c.want {
				t.Fatalf("got %q want %q", got, c.want)
			}
		})
	}
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	w := &srw{ResponseWriter: httptest.NewRecorder()}
	if w.Status() != http.StatusOK {
		t.Fatalf("got %d", w.Status())
	}
	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK)
	if w.Status() != http.StatusTeapot {
		t.Fatalf("first status must stick, got %d", w.Status())
	}
}
