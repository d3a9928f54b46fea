package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artpar/reqscope/internal/app"
	"github.com/artpar/reqscope/internal/core"
	"github.com/artpar/reqscope/internal/session"
)

// SendOptions holds options for the send command.
type SendOptions struct {
	Params   string
	Headers  string
	Body     string
	Auth     string
	AuthType string
}

// NewSendCommand creates the send command. It builds the request exactly
// like the interactive form and prints the same response text.
func NewSendCommand(root *RootOptions) *cobra.Command {
	opts := &SendOptions{}

	cmd := &cobra.Command{
		Use:   "send METHOD URL",
		Short: "Send one request and print the response",
		Long: "Send one request built from the same fields as the interactive form " +
			"and print the response text.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, root.Config(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Params, "params", "p", "", "Query params (format: k:v, k:v)")
	cmd.Flags().StringVarP(&opts.Headers, "header", "H", "", "Request headers (format: Key:Value, Key:Value)")
	cmd.Flags().StringVarP(&opts.Body, "body", "d", "", "Request body")
	cmd.Flags().StringVar(&opts.AuthType, "auth-type", string(core.AuthTypeNone), "Auth type (None, Bearer, Basic)")
	cmd.Flags().StringVarP(&opts.Auth, "auth", "a", "", "Bearer token or username:password")

	return cmd
}

func runSend(cmd *cobra.Command, cfg app.Config, method, url string, opts *SendOptions) error {
	authType, err := parseAuthType(opts.AuthType)
	if err != nil {
		return err
	}

	req := session.Build(session.Snapshot{
		Method:    strings.ToUpper(method),
		URL:       url,
		Params:    opts.Params,
		Headers:   opts.Headers,
		Body:      opts.Body,
		AuthType:  authType,
		AuthInput: opts.Auth,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	resp, err := app.New(app.WithConfig(cfg)).Send(ctx, req)
	fmt.Fprintln(cmd.OutOrStdout(), session.FormatResult(resp, err))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return nil
}

func parseAuthType(s string) (core.AuthType, error) {
	for _, t := range core.AuthTypes() {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown auth type %q", s)
}
