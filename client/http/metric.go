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
	"github.com/prometheus/client_golang/prometheus"
)

type clientMetric struct {
	requestTotal     *prometheus.CounterVec
	responseTotal    *prometheus.CounterVec
	inflightRequests prometheus.Gauge
	costHistogram    prometheus.Histogram
}

func newClientMetric() *clientMetric {
	buckets := []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000}
	metric := &clientMetric{
		requestTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Name: "async_http_request_total", Help: "async_http_request_total counter"}, []string{"method"}),
		responseTotal:    prometheus.NewCounterVec(prometheus.CounterOpts{Name: "async_http_response_total", Help: "async_http_response_total counter"}, []string{"method", "code"}),
		inflightRequests: prometheus.NewGauge(prometheus.GaugeOpts{Name: "async_http_inflight_requests", Help: "async_http_inflight_requests gauge"}),
		costHistogram:    prometheus.NewHistogram(prometheus.HistogramOpts{Name: "async_http_request_histogram", Help: "async_http_request_histogram", Buckets: buckets}),
	}

	prometheus.Register(metric.requestTotal)
	prometheus.Register(metric.responseTotal)
	prometheus.Register(metric.inflightRequests)
	prometheus.Register(metric.costHistogram)

	return metric
}

func (m *clientMetric) saveMetric(method, code string, cost int64) {
	m.responseTotal.WithLabelValues(method, code).Inc()
	m.costHistogram.Observe(float64(cost))
}
