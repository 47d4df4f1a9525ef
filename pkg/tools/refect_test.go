package tools

import (
	"reflect"
	"testing"
)

type testConfig struct {
	Timeout   uint   `yaml:"timeout" default:"20"`
	Name      string `yaml:"name" default:"async-http/1.0"`
	Ratio     float64
	QueueSize int   `yaml:"queue_size" default:"16"`
	Verbose   *bool `yaml:"verbose" default:"false"`
}

func TestSetDefaultValueIfNil(t *testing.T) {
	config := &testConfig{}
	DoTagFunc(config, []func(reflect.StructField, reflect.Value){SetDefaultValueIfNil})

	if config.Timeout != 20 {
		t.Errorf("Timeout = %d, want 20", config.Timeout)
	}
	if config.Name != "async-http/1.0" {
		t.Errorf("Name = %q", config.Name)
	}
	if config.QueueSize != 16 {
		t.Errorf("QueueSize = %d, want 16", config.QueueSize)
	}
	if config.Verbose == nil || *config.Verbose != false {
		t.Errorf("Verbose = %v, want allocated false", config.Verbose)
	}
}

func TestSetDefaultValueKeepsExisting(t *testing.T) {
	verbose := true
	config := &testConfig{Timeout: 5, Name: "custom", Verbose: &verbose}
	DoTagFunc(config, []func(reflect.StructField, reflect.Value){SetDefaultValueIfNil})

	if config.Timeout != 5 || config.Name != "custom" {
		t.Errorf("existing values must not be overridden: %+v", config)
	}
	if !*config.Verbose {
		t.Error("existing pointer must not be overridden")
	}
}

func TestDoTagFuncNonPointer(t *testing.T) {
	// 非指针不生效也不panic
	DoTagFunc(testConfig{}, []func(reflect.StructField, reflect.Value){SetDefaultValueIfNil})
	DoTagFunc(nil, []func(reflect.StructField, reflect.Value){SetDefaultValueIfNil})
}
