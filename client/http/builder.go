package http

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const defaultHeadersCount = 4

// headerMap 请求头集合。名字在写入时统一转小写用于去重，
// 同名后写的覆盖先写的，输出顺序为首次写入顺序。
type headerMap struct {
	keys   []string
	values map[string]string
}

func newHeaderMap(capacity int) *headerMap {
	return &headerMap{
		keys:   make([]string, 0, capacity),
		values: make(map[string]string, capacity),
	}
}

func (m *headerMap) put(name, value string) {
	key := strings.ToLower(name)
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *headerMap) putIfAbsent(name, value string) {
	key := strings.ToLower(name)
	if _, ok := m.values[key]; ok {
		return
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
}

// buildRequestText 把Request序列化成HTTP/1.1报文
func buildRequestText(request *Request, userAgent string) []byte {
	headers := newHeaderMap(len(request.Headers) + defaultHeadersCount)

	for _, h := range request.Headers {
		headers.put(h.Name, h.Value)
	}

	// 注入必选请求头
	headers.put("user-agent", userAgent)
	headers.put("host", request.Host+":"+request.Port)
	if request.BodyData != "" {
		headers.put("content-length", strconv.Itoa(len(request.BodyData)))
	}
	headers.putIfAbsent("accept", "*/*")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s HTTP/1.1\r\n", request.Method, request.Resource)
	for _, key := range headers.keys {
		fmt.Fprintf(&buf, "%s: %s\r\n", key, headers.values[key])
	}
	buf.WriteString("\r\n")
	if request.BodyData != "" {
		buf.WriteString(request.BodyData)
	}

	return buf.Bytes()
}
