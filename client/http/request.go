package http

import (
	"strings"
)

type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"
)

// Request 由Get/Post创建，入队后归worker协程所有
type Request struct {
	ID       uint32
	Method   Method
	URL      string
	Host     string
	Port     string
	Resource string
	HTTPS    bool
	Headers  []Header
	BodyData string

	flags        uint32
	callback     Callback
	callbackData interface{}
	invalid      bool // URL解析失败，worker直接产出errored响应
}

// initRequest 拆分URL为host、port和resource。
// 没有端口时按scheme取默认值，没有路径时resource为"/"。
func initRequest(rawURL string, request *Request) error {
	request.URL = rawURL

	rest := rawURL
	switch {
	case strings.HasPrefix(rest, schemeHTTPS):
		rest = rest[len(schemeHTTPS):]
		request.HTTPS = true
	case strings.HasPrefix(rest, schemeHTTP):
		rest = rest[len(schemeHTTP):]
	default:
		return MalformedURLErr
	}

	slash := strings.IndexByte(rest, '/')
	hostPort := rest
	if slash >= 0 {
		hostPort = rest[:slash]
		request.Resource = rest[slash:]
	} else {
		request.Resource = "/"
	}

	// 端口分隔符只在路径之前才算数
	if colon := strings.IndexByte(hostPort, ':'); colon >= 0 {
		request.Host = hostPort[:colon]
		request.Port = hostPort[colon+1:]
	} else {
		request.Host = hostPort
		if request.HTTPS {
			request.Port = "443"
		} else {
			request.Port = "80"
		}
	}

	if request.Host == "" {
		return MalformedURLErr
	}

	return nil
}
