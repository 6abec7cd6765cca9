package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/services"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

var shortenCmd = &cobra.Command{
	Use:   "shorten <url>",
	Short: "Create a short link",
	Example: `  linkmaker shorten example.com
  linkmaker shorten "https://go.dev/doc/effective_go"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := service.Shorten(cmd.Context(), args[0])
		if err != nil {
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				return errors.New(verr.Message)
			}
			return err
		}
		fmt.Printf("Code:      %s\n", rec.ShortCode)
		fmt.Printf("Short URL: %s/%s\n", cfg.BaseURL, rec.ShortCode)
		fmt.Printf("Original:  %s\n", rec.OriginalURL)
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <url|fragment|code>",
	Short: "Resolve a short link and count the click",
	Example: `  linkmaker resolve "https://sho.rt/#/abc123"
  linkmaker resolve "/?short=abc123"
  linkmaker resolve abc123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nav := ports.NavigatorFunc(func(_ context.Context, destination string) error {
			fmt.Println(destination)
			return nil
		})

		res := service.Resolve(cmd.Context(), domain.TargetFromURL(args[0]), nav)
		switch res.Status {
		case domain.StatusRedirected:
			return nil
		case domain.StatusNotFound:
			return fmt.Errorf("short link not found: %s", res.Code)
		default:
			return fmt.Errorf("no short code in %q", args[0])
		}
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <code>",
	Short: "Delete a short link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := service.DeleteLink(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List short links, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records := service.History(cmd.Context())
		if len(records) == 0 {
			fmt.Println("No links yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tCLICKS\tCREATED\tORIGINAL URL")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ShortCode, humanize.Comma(r.Clicks), humanize.Time(r.CreatedAt), r.OriginalURL)
		}
		return w.Flush()
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show link and click totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := service.Dashboard(cmd.Context())
		fmt.Printf("Total links:  %s\n", humanize.Comma(d.TotalLinks))
		fmt.Printf("Total clicks: %s\n", humanize.Comma(d.TotalClicks))
		fmt.Printf("Today:        %s\n", humanize.Comma(d.TodayLinks))
		fmt.Printf("Last update:  %s\n", d.LastUpdate)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shortenCmd, resolveCmd, deleteCmd, historyCmd, dashboardCmd)
}
