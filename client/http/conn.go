package http

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"time"

	"github.com/caiflower/async-http/pkg/logger"
)

var (
	errWantRead   = errors.New("want read")
	errPeerClosed = errors.New("peer close notify")
)

// connection 持有单个请求的socket和TLS会话
type connection struct {
	tcp    net.Conn
	tls    *tls.Conn
	closed bool
	log    logger.ILog
}

// connect 建立TCP连接，HTTPS时完成TLS握手。
// 证书校验行为由请求的flags决定。
func (c *client) connect(request *Request) (*connection, int32) {
	timeout := time.Duration(c.config.ConnectTimeout) * time.Second

	var tcp net.Conn
	var err error
	for _, addr := range c.dns.resolve(request.Host) {
		tcp, err = net.DialTimeout("tcp", net.JoinHostPort(addr, request.Port), timeout)
		if err == nil {
			break
		}
	}
	if tcp == nil {
		if err != nil {
			c.log.Error("[http] connect %s:%s err: %s", request.Host, request.Port, err.Error())
		}
		return nil, ErrCodeConnect
	}

	conn := &connection{tcp: tcp, log: c.log}

	if request.HTTPS {
		tlsConfig := &tls.Config{ServerName: request.Host}
		if request.flags&VerifyHostCert != 0 {
			pool, poolErr := c.trust.pool(request.flags&UseExternalCertFile != 0)
			if poolErr != nil {
				c.log.Error("[http] load ca chain err: %s", poolErr.Error())
				_ = tcp.Close()
				return nil, ErrCodeCertParse
			}
			tlsConfig.RootCAs = pool
		} else {
			tlsConfig.InsecureSkipVerify = true
		}

		session := tls.Client(tcp, tlsConfig)
		handshakeCtx, cancel := context.WithTimeout(context.Background(), time.Duration(c.config.TLSHandshakeTimeout)*time.Second)
		err = session.HandshakeContext(handshakeCtx)
		cancel()
		if err != nil {
			c.log.Error("[http] tls handshake with %s err: %s", request.Host, err.Error())
			_ = tcp.Close()
			if isVerifyError(err) {
				return nil, ErrCodeCertVerify
			}
			return nil, ErrCodeTLSHandshake
		}
		conn.tls = session
	}

	return conn, ErrCodeNone
}

func isVerifyError(err error) bool {
	var unknownAuthority x509.UnknownAuthorityError
	var hostname x509.HostnameError
	var invalid x509.CertificateInvalidError
	return errors.As(err, &unknownAuthority) || errors.As(err, &hostname) || errors.As(err, &invalid)
}

// stream 返回数据面连接，HTTPS时经过TLS会话
func (c *connection) stream() net.Conn {
	if c.tls != nil {
		return c.tls
	}
	return c.tcp
}

// write 带截止时间地把整个缓冲写出去
func (c *connection) write(data []byte, timeout time.Duration) int32 {
	_ = c.stream().SetWriteDeadline(time.Now().Add(timeout))

	for written := 0; written < len(data); {
		n, err := c.stream().Write(data[written:])
		if err != nil {
			c.log.Error("[http] write err: %s", err.Error())
			return ErrCodeWrite
		}
		written += n
	}

	_ = c.stream().SetWriteDeadline(time.Time{})
	return ErrCodeNone
}

// read 在wait时间内最多读一次。超时返回errWantRead表示数据未就绪，
// 对端正常关闭返回errPeerClosed，由定界逻辑决定响应是否完整
func (c *connection) read(buf []byte, wait time.Duration) (int, error) {
	_ = c.stream().SetReadDeadline(time.Now().Add(wait))
	n, err := c.stream().Read(buf)
	if err != nil {
		if n > 0 {
			return n, nil
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return 0, errWantRead
		}
		if errors.Is(err, io.EOF) {
			return 0, errPeerClosed
		}
		return 0, err
	}
	return n, nil
}

// close 发送close-notify并释放socket，可重复调用
func (c *connection) close() {
	if c.closed {
		return
	}
	c.closed = true

	if c.tls != nil {
		// tls.Conn.Close发送close-notify并关闭底层socket
		_ = c.tls.SetWriteDeadline(time.Now().Add(time.Second))
		_ = c.tls.Close()
		return
	}
	_ = c.tcp.Close()
}
