package format

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gopatchy/jsv/pkg/errors"
)

func tomlMarshalStream(vs []any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := toml.NewEncoder(buf)

	for i, v := range vs {
		if _, ok := v.(map[string]any); !ok {
			return nil, fmt.Errorf("toml document of %T (%w)", v, errors.ErrInvalidType)
		}

		if i > 0 {
			buf.WriteString("---\n")
		}

		err := enc.Encode(v)
		if err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

var tomlSeparatorRE = regexp.MustCompile(`(?m)^(\+\+\+|---)$`)

// tomlUnmarshalStream splits on --- or +++ lines. Blank parts are skipped.
func tomlUnmarshalStream(in []byte) ([]any, error) {
	ret := []any{}

	for _, part := range tomlSeparatorRE.Split(string(in), -1) {
		if strings.TrimSpace(part) == "" {
			continue
		}

		var obj map[string]any

		err := toml.Unmarshal([]byte(part), &obj)
		if err != nil {
			return nil, err
		}

		ret = append(ret, tomlNormalize(obj))
	}

	return ret, nil
}

// tomlNormalize renders toml's date and time values as text, the way the
// json and yaml decoders hand them over.
func tomlNormalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, x := range val {
			val[k] = tomlNormalize(x)
		}
		return val

	case []any:
		for i, x := range val {
			val[i] = tomlNormalize(x)
		}
		return val

	case time.Time:
		return val.Format(time.RFC3339Nano)

	case toml.LocalDate:
		return val.String()

	case toml.LocalTime:
		return val.String()

	case toml.LocalDateTime:
		return val.String()

	default:
		return val
	}
}
