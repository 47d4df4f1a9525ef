/*
 * Copyright 2024 caiflower Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package http

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slices"

	"github.com/caiflower/async-http/pkg/e"
	"github.com/caiflower/async-http/pkg/logger"
	"github.com/caiflower/async-http/pkg/queue"
	"github.com/caiflower/async-http/pkg/syncx"
	"github.com/caiflower/async-http/pkg/tools"
)

type Config struct {
	ConnectTimeout      uint   `yaml:"connect_timeout" default:"10"`        //建立连接超时时间，单位：s
	ReadTimeout         uint   `yaml:"read_timeout" default:"5"`            //读等待超时时间，单位：s
	TLSHandshakeTimeout uint   `yaml:"tls_handshake_timeout" default:"5"`   //执行TLS握手的超时时间，单位：s
	ReadBufferSize      int    `yaml:"read_buffer_size" default:"4096"`     //单次读取缓冲区大小
	QueueSize           int    `yaml:"queue_size" default:"16"`             //请求、响应队列初始容量
	UserAgent           string `yaml:"user_agent" default:"async-http/1.0"` //user-agent请求头
	CaCertFile          string `yaml:"ca_cert_file" default:"/etc/ssl/certs/trusted-ca-list.pem"` //外部CA证书路径
	DNSCacheExpiration  uint   `yaml:"dns_cache_expiration" default:"60"`   //DNS解析cache过期时间，单位：s
	Verbose             *bool  `yaml:"verbose" default:"false"`             //是否打印请求响应报文
}

type client struct {
	config  Config
	log     logger.ILog
	verbose bool

	lock             sync.Locker
	initialized      bool
	requestQueue     *queue.SyncQueue[*Request]
	responseQueue    *queue.SyncQueue[*Response]
	requestSemaphore *syncx.Semaphore
	threadRunning    int32
	workerDone       chan struct{}
	nextRequestID    uint32

	metric *clientMetric
	dns    *resolverCache
	trust  *trustStore
}

func NewAsyncClient(config Config) AsyncClient {
	// 初始化默认配置
	tools.DoTagFunc(&config, []func(reflect.StructField, reflect.Value){tools.SetDefaultValueIfNil})

	c := &client{
		config:  config,
		log:     logger.DefaultLogger(),
		verbose: *config.Verbose,
		lock:    syncx.NewSpinLock(),
		metric:  newClientMetric(),
		dns:     newResolverCache(time.Duration(config.DNSCacheExpiration) * time.Second),
		trust:   newTrustStore(config.CaCertFile),
	}

	c.log.Info("AsyncClient config: %v", tools.ToJson(config))
	return c
}

func (c *client) Init() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.initialized {
		return nil
	}

	c.requestQueue = queue.NewSyncQueue[*Request](c.config.QueueSize)
	c.responseQueue = queue.NewSyncQueue[*Response](c.config.QueueSize)
	c.requestSemaphore = syncx.NewSemaphore()
	c.workerDone = make(chan struct{})
	atomic.StoreInt32(&c.threadRunning, 1)

	go func() {
		defer close(c.workerDone)
		defer e.OnError("[http] worker")
		c.workerMain()
	}()

	c.initialized = true
	return nil
}

func (c *client) Shutdown() {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.initialized {
		return
	}

	// worker在信号量或读取上挂起时，由信号量唤醒后观察到标志退出
	atomic.StoreInt32(&c.threadRunning, 0)
	c.requestSemaphore.Signal()
	<-c.workerDone

	c.initialized = false
}

func (c *client) Get(url string, headers []Header, callback Callback, userdata interface{}, flags uint32) uint32 {
	request := &Request{
		Method:       MethodGet,
		Headers:      slices.Clone(headers),
		flags:        flags,
		callback:     callback,
		callbackData: userdata,
	}
	if err := initRequest(url, request); err != nil {
		c.log.Error("[http] malformed url '%s'", url)
		request.invalid = true
	}
	return c.addRequest(request)
}

func (c *client) Post(url string, headers []Header, bodyData string, callback Callback, userdata interface{}, flags uint32) uint32 {
	request := &Request{
		Method:       MethodPost,
		Headers:      slices.Clone(headers),
		BodyData:     bodyData,
		flags:        flags,
		callback:     callback,
		callbackData: userdata,
	}
	if err := initRequest(url, request); err != nil {
		c.log.Error("[http] malformed url '%s'", url)
		request.invalid = true
	}
	return c.addRequest(request)
}

// addRequest 入队并唤醒worker，立即返回请求ID
func (c *client) addRequest(request *Request) uint32 {
	c.lock.Lock()
	if !c.initialized {
		c.lock.Unlock()
		c.log.Error("[http] client not initialized, drop request '%s'", request.URL)
		return 0
	}
	c.lock.Unlock()

	request.ID = atomic.AddUint32(&c.nextRequestID, 1)
	c.metric.requestTotal.WithLabelValues(string(request.Method)).Inc()

	c.requestQueue.Push(request)
	c.requestSemaphore.Signal()

	c.log.Info("[http] requesting %s", request.URL)
	return request.ID
}

// ProcessResponses 取空响应队列并同步执行回调，
// 必须在消费响应的协程（通常是主协程）上调用
func (c *client) ProcessResponses() {
	if c.responseQueue == nil {
		return
	}
	for {
		response, ok := c.responseQueue.TryPop()
		if !ok {
			break
		}

		if response.callback != nil {
			func() {
				defer e.OnError("[http] response callback")
				response.callback(response, response.callbackData)
			}()
		}
	}
}
