package config

import "time"

// Options is a string-keyed, typed-getter configuration map for the
// pluggable pieces that don't fit the static Config schema: a
// BatchSource's own settings and a pipeline procedure's per-step
// parameters. Grounded on the teacher's SourceConfig typed-getter idiom.
type Options map[string]interface{}

func (o Options) GetString(key, defaultValue string) string {
	if o == nil {
		return defaultValue
	}
	if v, ok := o[key].(string); ok {
		return v
	}
	return defaultValue
}

func (o Options) GetInt(key string, defaultValue int) int {
	if o == nil {
		return defaultValue
	}
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return defaultValue
}

// GetDuration accepts a parseable duration string (e.g. "2s") or a plain
// number of seconds.
func (o Options) GetDuration(key string, defaultValue time.Duration) time.Duration {
	if o == nil {
		return defaultValue
	}
	switch v := o[key].(type) {
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v) * time.Second
	}
	return defaultValue
}

func (o Options) GetBool(key string, defaultValue bool) bool {
	if o == nil {
		return defaultValue
	}
	if v, ok := o[key].(bool); ok {
		return v
	}
	return defaultValue
}

func (o Options) GetStringSlice(key string, defaultValue []string) []string {
	if o == nil {
		return defaultValue
	}
	switch v := o[key].(type) {
	case []string:
		return v
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return defaultValue
}
