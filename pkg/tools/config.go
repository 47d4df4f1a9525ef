package tools

import (
	"reflect"
)

func LoadConfig(filename string, v interface{}) error {
	err := UnmarshalFileYaml(filename, v)
	if err != nil {
		return err
	}

	DoTagFunc(v, []func(reflect.StructField, reflect.Value){SetDefaultValueIfNil})

	return nil
}
