package http

import (
	"testing"
)

func TestInitRequest(t *testing.T) {
	cases := []struct {
		url      string
		https    bool
		host     string
		port     string
		resource string
	}{
		{"http://h/", false, "h", "80", "/"},
		{"http://h", false, "h", "80", "/"},
		{"https://h:8443", true, "h", "8443", "/"},
		{"https://example.com/v1/test?Action=Test1", true, "example.com", "443", "/v1/test?Action=Test1"},
		{"http://127.0.0.1:8080/index.html", false, "127.0.0.1", "8080", "/index.html"},
		{"https://example.com", true, "example.com", "443", "/"},
		{"http://h:9090/a/b:c", false, "h", "9090", "/a/b:c"},
	}

	for _, c := range cases {
		request := &Request{}
		if err := initRequest(c.url, request); err != nil {
			t.Errorf("initRequest(%s) err: %s", c.url, err.Error())
			continue
		}
		if request.HTTPS != c.https || request.Host != c.host || request.Port != c.port || request.Resource != c.resource {
			t.Errorf("initRequest(%s) = https=%v host=%s port=%s resource=%s, want https=%v host=%s port=%s resource=%s",
				c.url, request.HTTPS, request.Host, request.Port, request.Resource, c.https, c.host, c.port, c.resource)
		}
		if request.URL != c.url {
			t.Errorf("initRequest(%s) should keep the original url, got %s", c.url, request.URL)
		}
	}
}

func TestInitRequestMalformed(t *testing.T) {
	for _, url := range []string{"example.com", "ftp://example.com/x", "", "http://", "https:///x"} {
		request := &Request{}
		if err := initRequest(url, request); err == nil {
			t.Errorf("initRequest(%q) should fail", url)
		}
	}
}
