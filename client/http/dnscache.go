package http

import (
	"net"
	"time"

	"github.com/patrickmn/go-cache"
)

// resolverCache DNS解析结果的本地cache，避免每个请求都查一次域名
type resolverCache struct {
	cache *cache.Cache
}

func newResolverCache(expiration time.Duration) *resolverCache {
	return &resolverCache{cache: cache.New(expiration, 5*time.Minute)}
}

func (r *resolverCache) resolve(host string) []string {
	if v, ok := r.cache.Get(host); ok {
		return v.([]string)
	}

	addrs, err := net.LookupHost(host)
	if err != nil || len(addrs) == 0 {
		// 解析失败时直接交给dial去报错
		return []string{host}
	}

	r.cache.Set(host, addrs, cache.DefaultExpiration)
	return addrs
}
