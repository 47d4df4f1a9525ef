package http

import (
	"fmt"
	"strings"
	"testing"

	"github.com/caiflower/async-http/pkg/logger"
)

func TestCheckFramingContentLength(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello")

	// 逐字节喂给定界器，只有最后一个字节到齐才算完整
	for i := 0; i < len(raw); i++ {
		f := checkFraming(raw[:i])
		if f.state == framingComplete {
			t.Fatalf("framing complete after %d/%d bytes", i, len(raw))
		}
	}

	f := checkFraming(raw)
	if f.state != framingComplete {
		t.Fatal("framing should be complete")
	}
	if string(f.body) != "hello" {
		t.Errorf("body = %q, want hello", f.body)
	}
	if f.mode != modeContentLength {
		t.Errorf("mode = %v, want modeContentLength", f.mode)
	}
}

func TestCheckFramingContentLengthZero(t *testing.T) {
	f := checkFraming([]byte("HTTP/1.1 204 No Content\r\nContent-Length: 0\r\n\r\n"))
	if f.state != framingComplete {
		t.Fatal("framing should be complete")
	}
	if len(f.body) != 0 {
		t.Errorf("body = %q, want empty", f.body)
	}
}

func TestCheckFramingCaseInsensitive(t *testing.T) {
	f := checkFraming([]byte("HTTP/1.1 200 OK\r\ncOnTeNt-LeNgTh: 2\r\n\r\nab"))
	if f.state != framingComplete || string(f.body) != "ab" {
		t.Errorf("case-insensitive content-length lookup failed: %+v", f)
	}
}

func TestCheckFramingChunked(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n3\r\nfoo\r\n4\r\nbarz\r\n0\r\n\r\n")

	f := checkFraming(raw)
	if f.state != framingComplete {
		t.Fatal("framing should be complete")
	}
	if string(f.body) != "foobarz" {
		t.Errorf("body = %q, want foobarz", f.body)
	}
	if f.mode != modeChunked {
		t.Errorf("mode = %v, want modeChunked", f.mode)
	}
}

func TestCheckFramingChunkedTrailersIgnored(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\nExpires: 0\r\n\r\n")
	f := checkFraming(raw)
	if f.state != framingComplete || string(f.body) != "hello" {
		t.Errorf("trailers should be discarded: %+v body=%q", f, f.body)
	}
}

func TestCheckFramingUnsupportedEncoding(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\nTransfer-Encoding: gzip, chunked\r\n\r\nxxxx")
	f := checkFraming(raw)
	if f.errCode != ErrCodeUnsupportedEncoding {
		t.Errorf("errCode = %d, want ErrCodeUnsupportedEncoding", f.errCode)
	}
}

func TestCheckFramingConnectionClose(t *testing.T) {
	// 无长度信息，定界交给连接关闭
	f := checkFraming([]byte("HTTP/1.1 200 OK\r\n\r\nsome body"))
	if f.state != framingIncomplete {
		t.Errorf("state = %v, want framingIncomplete", f.state)
	}
	if f.mode != modeNone {
		t.Errorf("mode = %v, want modeNone", f.mode)
	}
	if f.headerEnd != len("HTTP/1.1 200 OK\r\n\r\n") {
		t.Errorf("headerEnd = %d", f.headerEnd)
	}
}

// chunk编码的逆运算测试：任意内容编码后逐字节喂入都能还原
func TestUnchunkRoundTrip(t *testing.T) {
	bodies := []string{
		"",
		"a",
		"foobarz",
		strings.Repeat("0123456789abcdef", 1000),
		"\r\n\r\n binary-ish \x00\x01\x02",
	}

	for _, body := range bodies {
		encoded := chunkEncode(body, 7)

		// 终止chunk的"0\r\n"一到就算完成，所以只检查这之前的前缀
		for i := 0; i < len(encoded)-2; i++ {
			if _, state := unchunk([]byte(encoded[:i])); state == framingComplete {
				t.Fatalf("unchunk complete on partial input %d/%d", i, len(encoded))
			}
		}

		decoded, state := unchunk([]byte(encoded))
		if state != framingComplete {
			t.Fatalf("unchunk(%q) state = %v", encoded, state)
		}
		if string(decoded) != body {
			t.Errorf("unchunk round trip failed: got %q, want %q", decoded, body)
		}
	}
}

func chunkEncode(body string, chunkSize int) string {
	var sb strings.Builder
	for len(body) > 0 {
		n := chunkSize
		if n > len(body) {
			n = len(body)
		}
		fmt.Fprintf(&sb, "%x\r\n%s\r\n", n, body[:n])
		body = body[n:]
	}
	sb.WriteString("0\r\n\r\n")
	return sb.String()
}

func TestUnchunkBadSize(t *testing.T) {
	if _, state := unchunk([]byte("zz\r\nfoo\r\n0\r\n\r\n")); state != framingBad {
		t.Errorf("state = %v, want framingBad", state)
	}
}

func TestUnchunkExtension(t *testing.T) {
	decoded, state := unchunk([]byte("3;name=value\r\nfoo\r\n0\r\n\r\n"))
	if state != framingComplete || string(decoded) != "foo" {
		t.Errorf("chunk extension should be discarded, got %q state %v", decoded, state)
	}
}

func TestParseResponse(t *testing.T) {
	response := &Response{RawData: []byte("HTTP/1.1 404 Not Found\r\nContent-Type: text/html\r\nServer: mock\r\n\r\nbody")}
	if !parseResponse(response, logger.DefaultLogger()) {
		t.Fatal("parseResponse failed")
	}

	if response.StatusCode != 404 {
		t.Errorf("statusCode = %d, want 404", response.StatusCode)
	}
	// reason是状态行剩余的全部内容
	if response.Reason != "Not Found" {
		t.Errorf("reason = %q, want Not Found", response.Reason)
	}
	if len(response.Headers) != 2 {
		t.Fatalf("headers = %+v, want 2 entries", response.Headers)
	}
	if response.Headers[0].Name != "Content-Type" || response.Headers[0].Value != "text/html" {
		t.Errorf("header[0] = %+v", response.Headers[0])
	}
	if response.HeaderText != "Content-Type: text/html\r\nServer: mock" {
		t.Errorf("headerText = %q", response.HeaderText)
	}
}

func TestParseResponseNoReason(t *testing.T) {
	response := &Response{RawData: []byte("HTTP/1.1 200\r\n\r\n")}
	if !parseResponse(response, logger.DefaultLogger()) {
		t.Fatal("parseResponse failed")
	}
	if response.StatusCode != 200 || response.Reason != "" {
		t.Errorf("statusCode = %d reason = %q", response.StatusCode, response.Reason)
	}
}

func TestParseResponseMalformedHeaderSkipped(t *testing.T) {
	response := &Response{RawData: []byte("HTTP/1.1 200 OK\r\ngarbage line\r\nServer: mock\r\n\r\n")}
	if !parseResponse(response, logger.DefaultLogger()) {
		t.Fatal("malformed header lines should not fail the response")
	}
	if len(response.Headers) != 1 || response.Headers[0].Name != "Server" {
		t.Errorf("headers = %+v", response.Headers)
	}
}

func TestParseResponseBadProtocol(t *testing.T) {
	for _, raw := range []string{"ICY 200 OK\r\n\r\n", "HTTP/1.1 abc OK\r\n\r\n", "HTTP/1.1\r\n\r\n"} {
		response := &Response{RawData: []byte(raw)}
		if parseResponse(response, logger.DefaultLogger()) {
			t.Errorf("parseResponse(%q) should fail", raw)
		}
	}
}
