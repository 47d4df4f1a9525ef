package http

import "fmt"

var (
	MalformedURLErr        = fmt.Errorf("malformed url")
	NotInitializedErr      = fmt.Errorf("client not initialized")
	CertParseErr           = fmt.Errorf("parse ca certificate failed")
	UnsupportedEncodingErr = fmt.Errorf("unsupported transfer encoding")
)

// 传输层错误码，保存在Response.Error里
const (
	ErrCodeNone                int32 = 0
	ErrCodeMalformedURL        int32 = -0x0001
	ErrCodeConnect             int32 = -0x0002
	ErrCodeCertParse           int32 = -0x0003
	ErrCodeTLSHandshake        int32 = -0x0004
	ErrCodeCertVerify          int32 = -0x0005
	ErrCodeWrite               int32 = -0x0006
	ErrCodeRead                int32 = -0x0007
	ErrCodeReadTimeout         int32 = -0x0008
	ErrCodePeerClosed          int32 = -0x0009
	ErrCodeBadResponse         int32 = -0x000a
	ErrCodeUnsupportedEncoding int32 = -0x000b
)

func errorText(code int32) string {
	switch code {
	case ErrCodeMalformedURL:
		return "malformed url"
	case ErrCodeConnect:
		return "connect failed"
	case ErrCodeCertParse:
		return "ca certificate parse failed"
	case ErrCodeTLSHandshake:
		return "tls handshake failed"
	case ErrCodeCertVerify:
		return "certificate verify failed"
	case ErrCodeWrite:
		return "write failed"
	case ErrCodeRead:
		return "read failed"
	case ErrCodeReadTimeout:
		return "read timeout"
	case ErrCodePeerClosed:
		return "connection closed by peer"
	case ErrCodeBadResponse:
		return "bad response"
	case ErrCodeUnsupportedEncoding:
		return "unsupported transfer encoding"
	default:
		return "unknown error"
	}
}
