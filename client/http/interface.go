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

// 证书校验标志位，按位独立。UseExternalCertFile只有和VerifyHostCert一起使用才有意义
const (
	None                uint32 = 0
	VerifyHostCert      uint32 = 1 << 0
	UseExternalCertFile uint32 = 1 << 1
)

// Header 用户自定义请求头，保序
type Header struct {
	Name  string
	Value string
}

// Callback 响应回调。只会在调用ProcessResponses的协程上同步执行
type Callback func(response *Response, userdata interface{})

// Response 由worker协程生产，ProcessResponses消费
type Response struct {
	RequestID  uint32
	URL        string
	RawData    []byte   // 收到的完整原始字节，失败时为空
	HeaderText string   // 响应头块原文
	Headers    []Header // 解析后的响应头
	Body       string   // 解码后的响应体
	StatusCode int
	Reason     string
	Error      int32 // 传输层错误码，成功时为0
	Errored    bool  // worker未能拿到完整响应
	Close      bool  // 连接复用未实现，始终按关闭处理

	callback     Callback
	callbackData interface{}
}

// AsyncClient 异步HTTP/1.1客户端。
// Get/Post把请求入队后立即返回，由单个后台worker完成
// 连接、发送、接收和解析，调用方通过周期性调用
// ProcessResponses在自己的协程上取回响应并执行回调。
type AsyncClient interface {
	// Init 初始化队列并启动worker，幂等
	Init() error
	// Shutdown 停止worker并等待退出，幂等
	Shutdown()
	// Get 发起GET请求，headers可以为nil。返回请求ID，用于关联回调
	Get(url string, headers []Header, callback Callback, userdata interface{}, flags uint32) uint32
	// Post 发起POST请求，bodyData为文本请求体
	Post(url string, headers []Header, bodyData string, callback Callback, userdata interface{}, flags uint32) uint32
	// ProcessResponses 取空响应队列，同步执行每个响应的回调
	ProcessResponses()
}
