package http

import (
	"path/filepath"
	"testing"
)

func TestTrustStoreBuiltinRoots(t *testing.T) {
	trust := newTrustStore("")
	pool, err := trust.pool(false)
	if err != nil {
		t.Fatalf("builtin roots should parse: %s", err.Error())
	}
	if pool == nil {
		t.Fatal("pool is nil")
	}

	// 内置池只构造一次
	again, err := trust.pool(false)
	if err != nil {
		t.Fatalf("second pool err: %s", err.Error())
	}
	if again != pool {
		t.Error("builtin pool should be shared")
	}
}

func TestTrustStoreExternalFileMissing(t *testing.T) {
	trust := newTrustStore(filepath.Join(t.TempDir(), "no-such-bundle.pem"))
	if _, err := trust.pool(true); err == nil {
		t.Error("missing external cert file should fail")
	}
}
