package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
)

// call sends one request to the agent and writes the response body to the
// command's stdout. Non-2xx replies become errors.
func (af *agentFlags) call(ctx context.Context, cmd *cobra.Command, method, path string, body any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(b)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, strings.TrimSuffix(af.addr, "/")+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if af.token != "" {
		req.Header.Set("Authorization", "Bearer "+af.token)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.Logger = nil

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call agent: %w", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("agent replied %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(out)))
	return err
}

func newVisibilityCmd(af *agentFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "visibility [visible|hidden]",
		Short:     "Show or report host visibility",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"visible", "hidden"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return af.call(cmd.Context(), cmd, http.MethodGet, apiPrefix+"/visibility", nil)
			}
			if args[0] != "visible" && args[0] != "hidden" {
				return fmt.Errorf("state must be visible or hidden, got %q", args[0])
			}
			return af.call(cmd.Context(), cmd, http.MethodPost, apiPrefix+"/visibility", map[string]string{"state": args[0]})
		},
	}
}

func newReconcileCmd(af *agentFlags) *cobra.Command {
	var keys []string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Invalidate the given query keys right away",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body := struct {
				Keys [][]string `json:"keys"`
			}{Keys: make([][]string, 0, len(keys))}
			for _, k := range keys {
				tokens := strings.Split(k, ",")
				for i := range tokens {
					tokens[i] = strings.TrimSpace(tokens[i])
				}
				body.Keys = append(body.Keys, tokens)
			}
			return af.call(cmd.Context(), cmd, http.MethodPost, apiPrefix+"/reconcile", body)
		},
	}
	cmd.Flags().StringArrayVar(&keys, "key", nil, `query key as comma-separated tokens, e.g. "tasks,c-42" (repeatable)`)
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newStatusCmd(af *agentFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the agent health report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return af.call(cmd.Context(), cmd, http.MethodGet, "/health", nil)
		},
	}
}
