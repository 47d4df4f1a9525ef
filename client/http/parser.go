package http

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/caiflower/async-http/pkg/logger"
)

var (
	lineEndBytes   = []byte("\r\n")
	headerEndBytes = []byte("\r\n\r\n")
)

type framingState int

const (
	framingIncomplete framingState = iota
	framingComplete
	framingBad
)

type framingMode int

const (
	modeNone framingMode = iota // 无长度信息，由连接关闭定界
	modeContentLength
	modeChunked
)

// framing 响应定界结果
type framing struct {
	headerEnd int    // \r\n\r\n之后的偏移，头块未收齐时为-1
	body      []byte // 定界完成后的解码body
	mode      framingMode
	state     framingState
	errCode   int32
}

// checkFraming 每次读到新数据后调用，判断raw是否已构成完整响应。
// content-length路径的body直接引用raw，chunked路径的body是
// 解码后独立分配的缓冲。
func checkFraming(raw []byte) framing {
	f := framing{headerEnd: -1}

	end := bytes.Index(raw, headerEndBytes)
	if end < 0 {
		// 头块还没收齐
		return f
	}
	f.headerEnd = end + len(headerEndBytes)

	head := raw[:f.headerEnd]
	rest := raw[f.headerEnd:]

	if value, ok := findHeaderValue(head, "content-length"); ok {
		f.mode = modeContentLength
		contentLength, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || contentLength < 0 {
			f.state = framingBad
			f.errCode = ErrCodeBadResponse
			return f
		}
		if len(rest) >= contentLength {
			f.body = rest[:contentLength]
			f.state = framingComplete
		}
		return f
	}

	if value, ok := findHeaderValue(head, "transfer-encoding"); ok {
		f.mode = modeChunked
		for _, token := range strings.Split(value, ",") {
			token = strings.ToLower(strings.TrimSpace(token))
			if token == "" {
				continue
			}
			if token != "chunked" {
				// gzip、deflate等编码不支持，必须报错而不是静默截断
				f.state = framingBad
				f.errCode = ErrCodeUnsupportedEncoding
				return f
			}

			body, state := unchunk(rest)
			if state == framingBad {
				f.state = framingBad
				f.errCode = ErrCodeBadResponse
				return f
			}
			if state == framingComplete {
				f.body = body
				f.state = framingComplete
			}
		}
		return f
	}

	return f
}

// findHeaderValue 在头块内逐行找header，名字不区分大小写
func findHeaderValue(head []byte, name string) (string, bool) {
	lines := strings.Split(string(head), "\r\n")
	for _, line := range lines[1:] {
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(line[:colon]), name) {
			return strings.TrimLeft(line[colon+1:], " \t"), true
		}
	}
	return "", false
}

// unchunk 解码chunked body。每个chunk是一行十六进制长度加数据，
// 长度为0的chunk表示结束，后面的trailer直接丢弃
func unchunk(data []byte) ([]byte, framingState) {
	var out bytes.Buffer
	rest := data
	for {
		nl := bytes.Index(rest, lineEndBytes)
		if nl < 0 {
			return nil, framingIncomplete
		}

		sizeLine := string(rest[:nl])
		if semi := strings.IndexByte(sizeLine, ';'); semi >= 0 {
			// chunk扩展丢弃
			sizeLine = sizeLine[:semi]
		}
		size, err := strconv.ParseInt(strings.TrimSpace(sizeLine), 16, 32)
		if err != nil || size < 0 {
			return nil, framingBad
		}
		rest = rest[nl+len(lineEndBytes):]

		if size == 0 {
			return out.Bytes(), framingComplete
		}

		if int64(len(rest)) < size+int64(len(lineEndBytes)) {
			return nil, framingIncomplete
		}
		out.Write(rest[:size])
		if !bytes.Equal(rest[size:size+2], lineEndBytes) {
			return nil, framingBad
		}
		rest = rest[size+2:]
	}
}

// parseResponse 定界完成后解析状态行和响应头。
// 状态行非法返回false，单个响应头格式不对只告警跳过。
func parseResponse(response *Response, log logger.ILog) bool {
	raw := response.RawData
	end := bytes.Index(raw, headerEndBytes)
	if end < 0 {
		return false
	}

	headBlock := string(raw[:end])
	lines := strings.Split(headBlock, "\r\n")

	// 状态行: HTTP/x.y SP code SP reason
	statusLine := lines[0]
	if !strings.HasPrefix(statusLine, "HTTP/") {
		log.Error("[http] bad protocol: '%s'", statusLine)
		return false
	}
	sp := strings.IndexByte(statusLine, ' ')
	if sp < 0 {
		log.Error("[http] bad protocol: '%s'", statusLine)
		return false
	}
	rest := strings.TrimLeft(statusLine[sp+1:], " ")
	codeText := rest
	reason := ""
	if sp2 := strings.IndexByte(rest, ' '); sp2 >= 0 {
		codeText = rest[:sp2]
		reason = strings.TrimSpace(rest[sp2+1:])
	}
	statusCode, err := strconv.Atoi(codeText)
	if err != nil {
		log.Error("[http] bad status code: '%s'", statusLine)
		return false
	}
	response.StatusCode = statusCode
	response.Reason = reason

	// 保留头块原文，用户想重新解析时可以用
	if nl := strings.Index(headBlock, "\r\n"); nl >= 0 {
		response.HeaderText = headBlock[nl+len(lineEndBytes):]
	}

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon <= 0 || strings.ContainsAny(line[:colon], " \t") {
			log.Warn("[http] malformed response header: '%s'", line)
			continue
		}
		name := line[:colon]
		value := strings.TrimLeft(line[colon+1:], " \t")
		if value == "" {
			log.Warn("[http] empty response header: '%s'", name)
			continue
		}
		response.Headers = append(response.Headers, Header{Name: name, Value: value})
	}

	return true
}
