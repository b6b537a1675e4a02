package parser

import (
	"context"
	"fmt"
	"sort"

	yamlv2 "gopkg.in/yaml.v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	BackendYAMLv3 = "yaml.v3"
	BackendYAMLv2 = "yaml.v2"
)

var backends = map[string]ParseFunc{
	BackendYAMLv3: parseV3,
	BackendYAMLv2: parseV2,
}

func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LoaderFor(name string) (Loader, error) {
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown parser backend %q (supported: %v)", name, Backends())
	}
	return func(ctx context.Context) (ParseFunc, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return fn, nil
	}, nil
}

func parseV3(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := yamlv3.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return normalizeMap(out), nil
}

func parseV2(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := yamlv2.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return normalizeMap(out), nil
}

// normalizeMap rewrites nested maps keyed by interface{} into map[string]any
// so both backends hand out the same shape.
func normalizeMap(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeMap(val)
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
