package http

import (
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	golocalv1 "github.com/caiflower/async-http/pkg/golocal/v1"
	"github.com/caiflower/async-http/pkg/tools"
)

// workerMain 单个后台worker，负责全部请求处理。
// 被信号量唤醒后必须把请求队列取空：多次Push可能只产生一次信号，
// 不取空就会丢请求。
func (c *client) workerMain() {
	for atomic.LoadInt32(&c.threadRunning) == 1 {
		c.requestSemaphore.Wait()

		for {
			request, ok := c.requestQueue.TryPop()
			if !ok {
				break
			}

			golocalv1.PutTraceID(tools.GenerateId("http" + strconv.Itoa(int(request.ID))))
			response := c.processRequest(request)

			if response.Errored {
				c.log.Error("[http] error while processing request to '%s': %s (%d)", request.URL, errorText(response.Error), response.Error)
			} else if response.StatusCode >= 300 {
				c.log.Warn("[http] response from %s :: %d", response.URL, response.StatusCode)
			}

			c.responseQueue.Push(response)
			golocalv1.Clean()
		}
	}
}

// processRequest 顺序执行 连接→发送→接收→解析。任何一步失败都会
// 释放资源并产出errored响应，每个请求恰好产出一个响应。
func (c *client) processRequest(request *Request) *Response {
	response := &Response{
		RequestID:    request.ID,
		URL:          request.URL,
		Close:        true,
		callback:     request.callback,
		callbackData: request.callbackData,
	}

	start := time.Now()
	c.metric.inflightRequests.Inc()
	defer func() {
		c.metric.inflightRequests.Dec()
		c.metric.saveMetric(string(request.Method), strconv.Itoa(response.StatusCode), time.Since(start).Milliseconds())

		// 失败的响应不携带数据
		if response.Errored {
			response.RawData = nil
			response.Body = ""
		}
	}()

	if request.invalid {
		response.Errored = true
		response.Error = ErrCodeMalformedURL
		return response
	}

	conn, code := c.connect(request)
	if code != ErrCodeNone {
		response.Errored = true
		response.Error = code
		return response
	}

	requestText := buildRequestText(request, c.config.UserAgent)
	if c.verbose {
		c.log.Debug("[http] --- REQ:\n%s---", string(requestText))
	}

	if code = conn.write(requestText, time.Duration(c.config.ReadTimeout)*time.Second); code != ErrCodeNone {
		conn.close()
		response.Errored = true
		response.Error = code
		return response
	}

	if !c.readBlocking(conn, response) {
		conn.close()
		response.Errored = true
		return response
	}

	if c.verbose {
		c.log.Debug("[http] --- RSP:\n%s---", string(response.RawData))
	}

	if !parseResponse(response, c.log) {
		conn.close()
		response.Errored = true
		if response.Error == ErrCodeNone {
			response.Error = ErrCodeBadResponse
		}
		return response
	}

	conn.close()
	return response
}

// readBlocking 驱动读取直到响应定界完成、对端关闭或出错。
// 每轮读取的等待时间由指数退避给出，读到数据就复位，
// 连续空转的总时间由ReadTimeout封顶。
func (c *client) readBlocking(conn *connection, response *Response) bool {
	readBackoff := backoff.NewExponentialBackOff()
	readBackoff.InitialInterval = 10 * time.Millisecond
	readBackoff.MaxInterval = 500 * time.Millisecond
	readBackoff.MaxElapsedTime = time.Duration(c.config.ReadTimeout) * time.Second

	var raw []byte
	buf := make([]byte, c.config.ReadBufferSize)
	peerClosed := false

	for {
		wait := readBackoff.NextBackOff()
		if wait == backoff.Stop {
			response.RawData = raw
			response.Error = ErrCodeReadTimeout
			return false
		}

		n, err := conn.read(buf, wait)
		if n > 0 {
			raw = append(raw, buf[:n]...)
			readBackoff.Reset()
		}
		if err != nil {
			if errors.Is(err, errPeerClosed) {
				peerClosed = true
			} else if !errors.Is(err, errWantRead) {
				response.RawData = raw
				response.Error = ErrCodeRead
				c.log.Error("[http] read err: %s", err.Error())
				return false
			}
		}

		// 每次读取之后都检查一次定界
		if len(raw) > 0 {
			result := checkFraming(raw)
			if result.errCode != ErrCodeNone {
				response.RawData = raw
				response.Error = result.errCode
				return false
			}
			if result.state == framingComplete {
				response.RawData = raw
				response.Body = string(result.body)
				return true
			}
			if peerClosed && result.mode == modeNone && result.headerEnd >= 0 {
				// 连接关闭定界：头块之后收到的全部字节就是body
				response.RawData = raw
				response.Body = string(raw[result.headerEnd:])
				return true
			}
		}

		if peerClosed {
			// 对端关闭但响应不完整
			response.RawData = raw
			response.Error = ErrCodePeerClosed
			return false
		}
	}
}
