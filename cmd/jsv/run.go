package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/samber/lo"

	"github.com/gopatchy/jsv"
	"github.com/gopatchy/jsv/internal/format"
	"github.com/gopatchy/jsv/internal/fsys"
	"github.com/gopatchy/jsv/internal/pathutil"
	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
	"github.com/gopatchy/jsv/pkg/log"
)

// runner validates every data file of one invocation against the schema.
type runner struct {
	opts     *options
	v        *jsv.Validator
	schemaID string
	call     []jsv.Option
	out      *format.Format
	fs       *fsys.FS
	data     []string

	stdin  io.Reader
	stdout io.Writer
}

func newRunner(opts *options) (*runner, error) {
	r := &runner{
		opts:   opts,
		v:      jsv.New(),
		fs:     fsys.New(os.DirFS("/")),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}

	for _, dir := range opts.SchemaDirs {
		paths, err := r.fs.Documents(absPath(string(dir)))
		if err != nil {
			return nil, err
		}

		for _, path := range paths {
			_, err = r.registerSchema(path)
			if err != nil {
				return nil, err
			}
		}
	}

	for _, path := range opts.Schemas {
		_, err := r.registerSchema(r.fs.Resolve(absPath(string(path))))
		if err != nil {
			return nil, err
		}
	}

	var err error

	r.schemaID, err = r.registerSchema(r.fs.Resolve(absPath(string(opts.Positional.SchemaPath))))
	if err != nil {
		return nil, err
	}

	r.data, err = r.fs.Expand(lo.Map(opts.Positional.DataPaths, func(p flags.Filename, _ int) string {
		return absPath(string(p))
	}))
	if err != nil {
		return nil, err
	}

	optMap, err := r.loadOptions()
	if err != nil {
		return nil, err
	}

	r.call, err = jsv.OptionsFromMap(optMap)
	if err != nil {
		return nil, err
	}

	r.out, err = format.Get(opts.OutputFormat)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// absPath makes path absolute for the root-based filesystem. Stdin passes
// through.
func absPath(path string) string {
	if utils.IsStdin(path) {
		return path
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return abs
}

func (r *runner) readDoc(path, def string) (*format.Format, []byte, error) {
	f, err := format.ForPath(path, def)
	if err != nil {
		return nil, nil, err
	}

	raw, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	return f, raw, nil
}

// registerSchema adds the schema at path under its $id or id, falling back
// to the file name without extension.
func (r *runner) registerSchema(path string) (string, error) {
	f, raw, err := r.readDoc(path, "json")
	if err != nil {
		return "", err
	}

	doc, err := f.UnmarshalMap(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	id := utils.GetMapStringValue(doc, "$id")
	if id == "" {
		id = utils.GetMapStringValue(doc, "id")
	}

	if id == "" {
		id = utils.Stem(path)
	}

	err = r.v.AddDocument(id, doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	log.Debugf("registered schema %s from %s", id, path)

	return id, nil
}

// loadOptions layers flags over the options file.
func (r *runner) loadOptions() (map[string]any, error) {
	opts := r.opts
	file := map[string]any{}

	if opts.OptionsPath != nil {
		path := absPath(string(*opts.OptionsPath))

		f, raw, err := r.readDoc(path, "yaml")
		if err != nil {
			return nil, err
		}

		file, err = f.UnmarshalMap(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return utils.Mixin(map[string]any{}, file, opts.flagOptions()), nil
}

// flagOptions returns only the options a flag was given for, so unset flags
// leave the options file alone.
func (opts *options) flagOptions() map[string]any {
	ret := map[string]any{}

	set := func(name string, given bool, v bool) {
		if given {
			ret[name] = v
		}
	}

	set("cast", opts.Cast, true)
	set("castSource", opts.CastSource, true)
	set("applyDefaultValue", opts.ApplyDefaults, true)
	set("validateDefaultValue", opts.ValidateDefaults, true)
	set("validateFormatsStrict", opts.StrictFormats, true)
	set("validateFormats", opts.NoFormats, false)
	set("validateFormatExtensions", opts.NoFormatExtensions, false)
	set("additionalProperties", opts.DenyAdditional, false)
	set("exitOnFirstError", opts.ExitOnFirstError, true)
	set("failOnFirstError", opts.FailOnFirstError, true)
	set("patternPropertiesStrict", opts.PatternPropertiesStrict, true)

	if opts.Diff || opts.Write {
		// Changes are only visible when cast results reach the document.
		if _, found := ret["castSource"]; !found && opts.Cast {
			ret["castSource"] = true
		}
	}

	return ret
}

// run validates every data file, writes the reports and returns whether
// all documents were valid.
func (r *runner) run() (bool, error) {
	results := []any{}
	diffs := []string{}
	valid := true

	for _, path := range r.data {
		res, err := r.validateFile(path)
		if err != nil {
			return false, err
		}

		results = append(results, res.reports...)
		diffs = append(diffs, res.diffs...)
		valid = valid && res.valid
	}

	out, err := r.out.MarshalStream(results)
	if err != nil {
		return false, fmt.Errorf("%s: %w (%w)", r.out.Name, err, errors.ErrEncode)
	}

	if r.opts.OutputPath != nil {
		err = os.WriteFile(string(*r.opts.OutputPath), out, 0o644)
	} else {
		_, err = r.stdout.Write(out)
	}

	if err != nil {
		return false, err
	}

	if r.opts.Diff && len(diffs) > 0 {
		_, err = io.WriteString(r.stdout, strings.Join(diffs, ""))
		if err != nil {
			return false, err
		}
	}

	return valid, nil
}

type fileResult struct {
	reports []any
	diffs   []string
	valid   bool
}

func (r *runner) validateFile(path string) (*fileResult, error) {
	var (
		f   *format.Format
		raw []byte
		err error
	)

	if utils.IsStdin(path) {
		f, err = format.ForPath(path, "json")
		if err == nil {
			raw, err = io.ReadAll(r.stdin)
		}
	} else {
		f, raw, err = r.readDoc(path, "json")
	}

	if err != nil {
		return nil, err
	}

	docs, err := f.UnmarshalStream(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w (%w)", path, err, errors.ErrDecode)
	}

	res := &fileResult{valid: true}
	changed := false

	for i, doc := range docs {
		object, err := pathutil.GetMap(doc, pathutil.Split(r.opts.Path))
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, i, err)
		}

		before, err := f.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		report, err := r.v.Validate(object, r.schemaID, r.call...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		after, err := f.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		if string(before) != string(after) {
			changed = true
			res.diffs = append(res.diffs, unifiedDiff(docName(path, i, len(docs)), before, after))
		}

		exported := report.Export()
		exported["file"] = path

		if r.opts.Path != "" {
			exported["path"] = r.opts.Path
		}

		if len(docs) > 1 {
			exported["document"] = i
		}

		res.reports = append(res.reports, exported)
		res.valid = res.valid && report.Valid
	}

	if changed && r.opts.Write && !utils.IsStdin(path) {
		out, err := f.MarshalStream(docs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w (%w)", path, err, errors.ErrEncode)
		}

		err = os.WriteFile(path, out, 0o644)
		if err != nil {
			return nil, err
		}

		log.Debugf("rewrote %s", path)
	}

	return res, nil
}

func docName(path string, i, n int) string {
	if n == 1 {
		return path
	}

	return fmt.Sprintf("%s#%d", path, i)
}
