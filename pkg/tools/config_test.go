package tools

import (
	"os"
	"path/filepath"
	"testing"
)

type yamlConfig struct {
	Timeout   uint   `yaml:"timeout" default:"20"`
	UserAgent string `yaml:"user_agent" default:"async-http/1.0"`
	QueueSize int    `yaml:"queue_size" default:"16"`
}

func TestLoadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := "timeout: 30\nuser_agent: custom/2.0\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("write config err: %s", err.Error())
	}

	config := &yamlConfig{}
	if err := LoadConfig(file, config); err != nil {
		t.Fatalf("LoadConfig err: %s", err.Error())
	}

	if config.Timeout != 30 {
		t.Errorf("Timeout = %d, want 30", config.Timeout)
	}
	if config.UserAgent != "custom/2.0" {
		t.Errorf("UserAgent = %q", config.UserAgent)
	}
	// 文件里没配的字段走default tag
	if config.QueueSize != 16 {
		t.Errorf("QueueSize = %d, want 16", config.QueueSize)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if err := LoadConfig("/no/such/config.yaml", &yamlConfig{}); err == nil {
		t.Error("missing config file should fail")
	}
}
