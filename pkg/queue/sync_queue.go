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

package queue

import (
	"sync"

	"github.com/caiflower/async-http/pkg/syncx"
)

const minCapacity = 16

// SyncQueue 线程安全FIFO队列。Push和TryPop都是线性化的，
// 出队顺序严格等于入队顺序。
type SyncQueue[T any] struct {
	lock  sync.Locker
	items []T
	head  int
}

func NewSyncQueue[T any](capacity int) *SyncQueue[T] {
	if capacity < minCapacity {
		capacity = minCapacity
	}
	return &SyncQueue[T]{
		lock:  syncx.NewSpinLock(),
		items: make([]T, 0, capacity),
	}
}

func (q *SyncQueue[T]) Push(item T) {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.items = append(q.items, item)
}

// TryPop 非阻塞出队，队列为空时返回false
func (q *SyncQueue[T]) TryPop() (item T, ok bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	var zero T
	if q.head == len(q.items) {
		// 队列已空，回收底层数组
		q.items = q.items[:0]
		q.head = 0
		return zero, false
	}

	item = q.items[q.head]
	q.items[q.head] = zero
	q.head++
	return item, true
}

func (q *SyncQueue[T]) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.items) - q.head
}
