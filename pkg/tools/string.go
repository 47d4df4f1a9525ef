package tools

import (
	"strconv"
	"strings"
)

func StringSliceContains(slice []string, str string) bool {
	for _, v := range slice {
		if v == str {
			return true
		}
	}
	return false
}

func ToString(value interface{}) string {
	var key string
	if value == nil {
		return key
	}

	switch value.(type) {
	case int:
		key = strconv.Itoa(value.(int))
	case int32:
		key = strconv.Itoa(int(value.(int32)))
	case int64:
		key = strconv.FormatInt(value.(int64), 10)
	case uint32:
		key = strconv.Itoa(int(value.(uint32)))
	case uint64:
		key = strconv.FormatUint(value.(uint64), 10)
	case string:
		key = value.(string)
	case []byte:
		key = string(value.([]byte))
	default:
		newValue, _ := Marshal(value)
		key = string(newValue)
	}

	return key
}

// FirstUpper 首字母大写
func FirstUpper(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
