package format

import (
	"bytes"
	"fmt"

	"github.com/magiconair/properties"

	"github.com/gopatchy/jsv/internal/pathutil"
	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
)

// Properties files hold one flat document; nested maps become dotted keys
// and lists become comma-separated values. Every decoded value is a string.

func propertiesMarshalStream(vs []any) ([]byte, error) {
	if len(vs) != 1 {
		return nil, fmt.Errorf("properties holds 1 document, got %d (%w)", len(vs), errors.ErrEncode)
	}

	m, ok := vs[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("properties document of %T (%w)", vs[0], errors.ErrInvalidType)
	}

	p := properties.NewProperties()
	p.WriteSeparator = "="

	err := propertiesFlatten(p, "", m)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}

	_, err = p.Write(buf, properties.UTF8)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func propertiesFlatten(p *properties.Properties, prefix string, m map[string]any) error {
	for k, v := range utils.SortedMap(m) {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		if sub, ok := v.(map[string]any); ok {
			err := propertiesFlatten(p, key, sub)
			if err != nil {
				return err
			}

			continue
		}

		if list, ok := v.([]any); ok {
			for i, x := range list {
				if _, isMap := x.(map[string]any); isMap {
					return fmt.Errorf("%s[%d]: map in list (%w)", key, i, errors.ErrInvalidType)
				}
			}
		}

		_, _, err := p.Set(key, utils.Stringify(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	return nil
}

func propertiesUnmarshalStream(in []byte) ([]any, error) {
	p, err := properties.Load(in, properties.UTF8)
	if err != nil {
		return nil, err
	}

	ret := map[string]any{}

	for _, key := range p.Keys() {
		v, _ := p.Get(key)

		// A key under a prefix that already holds a scalar is dropped.
		pathutil.Set(ret, pathutil.Split(key), v)
	}

	return []any{ret}, nil
}
