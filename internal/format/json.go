package format

import (
	"bytes"
	"encoding/json"
	"io"
)

func jsonMarshalStream(vs []any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)

	for _, v := range vs {
		err := enc.Encode(v)
		if err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func jsonMarshalStreamPretty(vs []any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")

	for _, v := range vs {
		err := enc.Encode(v)
		if err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// jsonUnmarshalStream reads concatenated documents, which covers both
// single-document json and jsonl.
func jsonUnmarshalStream(in []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(in))
	ret := []any{}

	for {
		var obj any

		err := dec.Decode(&obj)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		ret = append(ret, obj)
	}

	return ret, nil
}
