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

package syncx

// Semaphore 信号量，语义是"至少唤醒一个"，最多只保留一个未消费的信号。
// Signal不会阻塞，信号到达时如果已有信号在等待则合并为一个，
// 因此消费者每次被唤醒后必须把自己的工作队列消费干净。
type Semaphore struct {
	ch chan struct{}
}

func NewSemaphore() *Semaphore {
	return &Semaphore{ch: make(chan struct{}, 1)}
}

// Signal 唤醒至少一个等待者，多余的信号会被合并
func (s *Semaphore) Signal() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Wait 阻塞直到收到信号
func (s *Semaphore) Wait() {
	<-s.ch
}
