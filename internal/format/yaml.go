package format

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gopatchy/jsv/pkg/errors"
)

func yamlMarshalStream(vs []any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)

	for _, v := range vs {
		err := enc.Encode(v)
		if err != nil {
			return nil, err
		}
	}

	err := enc.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func yamlUnmarshalStream(in []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(in))
	ret := []any{}

	for {
		var node yaml.Node

		err := dec.Decode(&node)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		obj, err := yamlValue(&node)
		if err != nil {
			return nil, err
		}

		ret = append(ret, obj)
	}

	return ret, nil
}

// yamlValue converts a node tree into the generic shapes the validator
// works on: map[string]any, []any, string, bool, int, float64 and nil.
func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case 0:
		return nil, nil

	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return yamlValue(node.Content[0])

	case yaml.AliasNode:
		return yamlValue(node.Alias)

	case yaml.SequenceNode:
		ret := make([]any, 0, len(node.Content))

		for i, n := range node.Content {
			v, err := yamlValue(n)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			ret = append(ret, v)
		}

		return ret, nil

	case yaml.MappingNode:
		return yamlMapping(node)

	case yaml.ScalarNode:
		return yamlScalar(node)

	default:
		return nil, fmt.Errorf("yaml node kind %d (%w)", node.Kind, errors.ErrInvalidType)
	}
}

// yamlMapping applies merge keys (<<) first so local keys win.
func yamlMapping(node *yaml.Node) (map[string]any, error) {
	ret := map[string]any{}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "<<" {
			continue
		}

		src, err := yamlValue(node.Content[i+1])
		if err != nil {
			return nil, err
		}

		err = yamlMergeInto(ret, src)
		if err != nil {
			return nil, err
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i].Value
		if k == "<<" {
			continue
		}

		v, err := yamlValue(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}

		ret[k] = v
	}

	return ret, nil
}

func yamlMergeInto(dst map[string]any, src any) error {
	switch s := src.(type) {
	case map[string]any:
		for k, v := range s {
			dst[k] = v
		}

	case []any:
		// Earlier maps in the list take precedence.
		for i := len(s) - 1; i >= 0; i-- {
			m, ok := s[i].(map[string]any)
			if !ok {
				return fmt.Errorf("merge of %T (%w)", s[i], errors.ErrInvalidType)
			}

			for k, v := range m {
				dst[k] = v
			}
		}

	default:
		return fmt.Errorf("merge of %T (%w)", src, errors.ErrInvalidType)
	}

	return nil
}

func yamlScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil

	case "!!bool":
		var b bool
		err := node.Decode(&b)
		return b, err

	case "!!int":
		i, err := strconv.ParseInt(strings.ReplaceAll(node.Value, "_", ""), 0, 64)
		if err != nil {
			var f float64
			err = node.Decode(&f)
			return f, err
		}

		if i >= math.MinInt && i <= math.MaxInt {
			return int(i), nil
		}

		return i, nil

	case "!!float":
		var f float64
		err := node.Decode(&f)
		return f, err

	case "!!str", "!!timestamp", "!!binary":
		return node.Value, nil

	default:
		return nil, fmt.Errorf("yaml tag %s (%w)", node.ShortTag(), errors.ErrInvalidType)
	}
}
