package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ashureev/heartx/internal/app"
	"github.com/ashureev/heartx/internal/domain"
	"github.com/ashureev/heartx/internal/service"
	"github.com/ashureev/heartx/internal/tools"
)

type loader func(cmd *cobra.Command) (*app.App, error)

func newTranslateCommand(load loader) *cobra.Command {
	var (
		mode   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "translate [natural language]",
		Short: "Translate a request into a command and run it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			input := strings.Join(args, " ")

			if dryRun {
				tr := a.Translator.Translate(cmd.Context(), input, mode)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%s)\n", tr.Command, tr.Source)
				return nil
			}

			resp := a.Service.Translate(cmd.Context(), input, mode)
			renderResponse(cmd.OutOrStdout(), resp)
			if resp.Type == domain.ResultError {
				return ErrCommandFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", service.DefaultMode, "Interface mode recorded with the command")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Only translate, do not execute or record")
	return cmd
}

func newHistoryCommand(load loader) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent commands, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be a positive integer")
			}
			a, err := load(cmd)
			if err != nil {
				return err
			}
			records, err := a.Service.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			renderHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newToolsCommand(load loader) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			data, err := tools.Encode(a.Service.Tools(), asYAML)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of JSON")
	return cmd
}

func newDiscoverCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Sweep the local network for hosts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			hosts, err := a.Service.DiscoverNetwork(cmd.Context())
			if err != nil {
				return err
			}
			renderHosts(cmd.OutOrStdout(), hosts)
			return nil
		},
	}
}

func renderResponse(w io.Writer, resp service.Response) {
	fmt.Fprintf(w, "[%s] %s $ %s\n", resp.Timestamp, resp.ID, resp.Command)
	for _, line := range resp.Output {
		fmt.Fprintln(w, line)
	}
}

func renderHistory(w io.Writer, records []domain.CommandRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No history recorded yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tID\tTYPE\tMODE\tCOMMAND")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Timestamp, r.ID, r.Type, r.Mode, r.Command)
	}
	_ = tw.Flush()
}

func renderHosts(w io.Writer, hosts []domain.Host) {
	if len(hosts) == 0 {
		fmt.Fprintln(w, "No hosts found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "IP\tMAC\tVENDOR")
	for _, h := range hosts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", h.IP, h.MAC, h.Vendor)
	}
	_ = tw.Flush()
}
