package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"

	"github.com/gopatchy/jsv/pkg/log"
	"github.com/gopatchy/jsv/pkg/version"
)

type options struct {
	Schemas      []flags.Filename `short:"s" long:"schema" description:"additional schema file, registered by its $id or file name for $ref"`
	SchemaDirs   []flags.Filename `short:"S" long:"schema-dir" description:"register every schema document in a directory"`
	Path         string           `short:"p" long:"path" description:"validate the object at this dotted path inside each document"`
	OptionsPath  *flags.Filename  `short:"O" long:"options" description:"validator options file (any supported format)"`
	OutputPath   *flags.Filename  `short:"o" long:"output" description:"output file path"`
	OutputFormat string           `short:"f" long:"format" description:"report format" choice:"json" choice:"json-pretty" choice:"jsonl" choice:"toml" choice:"yaml" choice:"properties" default:"yaml"`

	Cast                    bool `short:"c" long:"cast" description:"coerce numeric and boolean strings to their declared type"`
	CastSource              bool `long:"cast-source" description:"write cast values back into the document"`
	ApplyDefaults           bool `short:"d" long:"apply-defaults" description:"fill missing properties from schema defaults"`
	ValidateDefaults        bool `long:"validate-defaults" description:"check schema defaults against their own schema"`
	StrictFormats           bool `long:"strict-formats" description:"treat unknown format names as errors"`
	NoFormats               bool `long:"no-formats" description:"skip format checks"`
	NoFormatExtensions      bool `long:"no-format-extensions" description:"skip extension formats such as url"`
	DenyAdditional          bool `short:"a" long:"deny-additional" description:"reject properties the schema does not declare"`
	ExitOnFirstError        bool `short:"x" long:"exit-on-first-error" description:"stop each document at its first error"`
	FailOnFirstError        bool `long:"fail-on-first-error" description:"abort at the first error"`
	PatternPropertiesStrict bool `long:"strict-pattern-properties" description:"patternProperties only claim keys they match"`

	Diff  bool `short:"D" long:"diff" description:"print a unified diff of changes made while validating"`
	Write bool `short:"w" long:"write" description:"write changed documents back to their files"`
	Watch bool `short:"W" long:"watch" description:"validate again whenever an input file changes"`

	Verbose bool `short:"v" long:"verbose" description:"enable verbose logging"`
	Version bool `short:"V" long:"version" description:"print version and exit"`

	Positional struct {
		SchemaPath flags.Filename   `positional-arg-name:"schemaPath" description:"schema file, extension optional"`
		DataPaths  []flags.Filename `positional-arg-name:"dataPath" description:"document file or directory, - for stdin"`
	} `positional-args:"yes"`
}

func main() {
	opts := &options{}

	fp := flags.NewParser(opts, flags.Default)
	fp.LongDescription = `
jsv validates JSON, YAML, TOML and properties documents against a schema and
reports every violation.

Exit status is 1 when any document is invalid.`

	_, err := fp.Parse()
	if err != nil {
		os.Exit(1)
	}

	version.PrintVersion(opts.Version)

	if opts.Positional.SchemaPath == "" || len(opts.Positional.DataPaths) == 0 {
		fp.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	if opts.Verbose {
		log.Debug = true
	}

	if opts.Watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err = watch(ctx, opts, func() error {
			_, err := runOnce(opts)
			return err
		})
		if err != nil {
			fatal(err)
		}

		return
	}

	valid, err := runOnce(opts)
	if err != nil {
		fatal(err)
	}

	if !valid {
		os.Exit(1)
	}
}

func runOnce(opts *options) (bool, error) {
	r, err := newRunner(opts)
	if err != nil {
		return false, err
	}

	return r.run()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
