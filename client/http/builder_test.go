package http

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// 用一个最简单的解析器把报文重新拆开
func reparseRequest(t *testing.T, text string) (line string, headers map[string]string, body string) {
	t.Helper()

	parts := strings.SplitN(text, "\r\n\r\n", 2)
	if len(parts) != 2 {
		t.Fatalf("request has no header terminator: %q", text)
	}
	body = parts[1]

	lines := strings.Split(parts[0], "\r\n")
	line = lines[0]
	headers = make(map[string]string)
	for _, l := range lines[1:] {
		kv := strings.SplitN(l, ": ", 2)
		if len(kv) != 2 {
			t.Fatalf("malformed header line: %q", l)
		}
		headers[kv[0]] = kv[1]
	}
	return
}

func TestBuildRequestText(t *testing.T) {
	request := &Request{
		Method:   MethodGet,
		Host:     "example.com",
		Port:     "80",
		Resource: "/v1/data",
		Headers:  []Header{{"X-Token", "abc"}},
	}

	line, headers, body := reparseRequest(t, string(buildRequestText(request, "async-http/1.0")))

	if line != "GET /v1/data HTTP/1.1" {
		t.Errorf("start line = %q", line)
	}
	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}

	want := map[string]string{
		"user-agent": "async-http/1.0",
		"host":       "example.com:80",
		"accept":     "*/*",
		"x-token":    "abc",
	}
	if diff := cmp.Diff(want, headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRequestTextPost(t *testing.T) {
	request := &Request{
		Method:   MethodPost,
		Host:     "example.com",
		Port:     "443",
		Resource: "/x",
		BodyData: "payload",
	}

	line, headers, body := reparseRequest(t, string(buildRequestText(request, "async-http/1.0")))

	if line != "POST /x HTTP/1.1" {
		t.Errorf("start line = %q", line)
	}
	if headers["content-length"] != "7" {
		t.Errorf("content-length = %q, want 7", headers["content-length"])
	}
	if body != "payload" {
		t.Errorf("body = %q, want payload", body)
	}
}

func TestBuildRequestTextHeaderDedup(t *testing.T) {
	request := &Request{
		Method:   MethodGet,
		Host:     "h",
		Port:     "80",
		Resource: "/",
		Headers: []Header{
			{"Accept", "text/html"},
			{"X-Trace", "1"},
			{"ACCEPT", "application/json"}, // 同名后写的覆盖先写的
		},
	}

	text := string(buildRequestText(request, "ua"))
	_, headers, _ := reparseRequest(t, text)

	if headers["accept"] != "application/json" {
		t.Errorf("accept = %q, want application/json", headers["accept"])
	}
	if strings.Count(text, "accept:") != 1 {
		t.Errorf("accept header should appear exactly once:\n%s", text)
	}

	// 用户自带accept时不注入默认值
	if strings.Contains(text, "*/*") {
		t.Errorf("default accept should not be injected:\n%s", text)
	}
}

func TestBuildRequestTextUserAgentOverride(t *testing.T) {
	request := &Request{
		Method:   MethodGet,
		Host:     "h",
		Port:     "80",
		Resource: "/",
		Headers:  []Header{{"User-Agent", "custom/2.0"}},
	}

	// user-agent是强制注入的，用户写了也会被覆盖
	_, headers, _ := reparseRequest(t, string(buildRequestText(request, "async-http/1.0")))
	if headers["user-agent"] != "async-http/1.0" {
		t.Errorf("user-agent = %q, want async-http/1.0", headers["user-agent"])
	}
}
