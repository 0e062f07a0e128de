package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robbyt/go-polytemplate"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		contextFile string
		sets        map[string]string
	)

	cmd := &cobra.Command{
		Use:   "resolve TEMPLATE",
		Short: "Resolve one template against a context",
		Example: `  polytemplate resolve 'hello ${name:world}, #{1 + 2}'
  polytemplate resolve --context ctx.yaml --strict 'order ${order.id}'
  polytemplate resolve --engine expr --set n=4 '#{int(n) * 2}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			scope, err := loadContext(contextFile, sets)
			if err != nil {
				return err
			}
			opts, err := a.options()
			if err != nil {
				return err
			}
			r, err := polytemplate.New(opts...)
			if err != nil {
				return err
			}

			out, err := r.Resolve(args[0], scope, a.cfg.Strict)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, out)
			return err
		},
	}

	cmd.Flags().StringVarP(&contextFile, "context", "c", "", "YAML or JSON file with the context mapping")
	cmd.Flags().StringToStringVar(&sets, "set", nil, "context values as key=value, applied over --context")
	return cmd
}
