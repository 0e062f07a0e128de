package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/robbyt/go-polytemplate"
	"github.com/robbyt/go-polytemplate/platform/source"
	"github.com/robbyt/go-polytemplate/platform/source/loader"
)

type httpAuthFlags struct {
	user     string
	password string
	token    string
}

func (f httpAuthFlags) options() *loader.HTTPOptions {
	opts := loader.DefaultHTTPOptions()
	switch {
	case f.token != "":
		return opts.WithHeaderAuth(map[string]string{"Authorization": "Bearer " + f.token})
	case f.user != "":
		return opts.WithBasicAuth(f.user, f.password)
	}
	return opts
}

// openSource loads a template document from a path or an http(s) URL.
func openSource(location, format string, auth httpAuthFlags) (source.Source, error) {
	var (
		f   source.Format
		err error
	)
	if format != "" {
		f, err = source.ParseFormat(format)
	} else {
		f, err = source.FormatFromPath(location)
	}
	if err != nil {
		return nil, err
	}

	var l loader.Loader
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		l, err = loader.NewFromHTTPWithOptions(location, auth.options())
	} else {
		var abs string
		abs, err = filepath.Abs(location)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve templates path: %w", err)
		}
		l, err = loader.NewFromDisk(abs)
	}
	if err != nil {
		return nil, err
	}
	return source.FromLoader(l, f)
}

func newBuildCmd(a *app) *cobra.Command {
	var (
		templates   string
		format      string
		contextFile string
		sets        map[string]string
		auth        httpAuthFlags
	)

	cmd := &cobra.Command{
		Use:   "build DEFINITION",
		Short: "Resolve every template of a definition and print them as YAML",
		Example: `  polytemplate build msg.order.delivery --templates application.properties --context ctx.yaml
  polytemplate build greeting --templates https://example.com/t.yaml --http-token "$TOKEN"`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			src, err := openSource(templates, format, auth)
			if err != nil {
				return err
			}
			scope, err := loadContext(contextFile, sets)
			if err != nil {
				return err
			}
			opts, err := a.options()
			if err != nil {
				return err
			}
			b, err := polytemplate.NewBuilder(src, opts...)
			if err != nil {
				return err
			}

			values, err := b.ResolveAll(args[0], scope)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				return fmt.Errorf("no templates found for definition %q", args[0])
			}

			enc := yaml.NewEncoder(a.stdout)
			enc.SetIndent(2)
			if err := enc.Encode(values); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&templates, "templates", "t", "", "template document: path or http(s) URL")
	flags.StringVar(&format, "format", "", "document format (yaml, json, properties), inferred from the extension by default")
	flags.StringVarP(&contextFile, "context", "c", "", "YAML or JSON file with the context mapping")
	flags.StringToStringVar(&sets, "set", nil, "context values as key=value, applied over --context")
	flags.StringVar(&auth.user, "http-user", "", "basic auth user for http templates")
	flags.StringVar(&auth.password, "http-password", "", "basic auth password for http templates")
	flags.StringVar(&auth.token, "http-token", "", "bearer token for http templates")
	_ = cmd.MarkFlagRequired("templates")
	return cmd
}
