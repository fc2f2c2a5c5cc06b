package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/qepting91/dex-ai/internal/session"
	"github.com/qepting91/dex-ai/internal/storage"
	"github.com/spf13/cobra"
)

var (
	browseType   string
	browseSearch string
	browseMore   int
	browseJSON   bool
)

var headerStyle = lipgloss.NewStyle().Bold(true)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List Pokémon filtered by type and search term",
	Long: `Browse the Pokédex the way the web view does.

The type filter picks the reference list (all or one type), --more loads
additional pages of 50 and --search matches a name substring or an exact id.`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseType, "type", "t", domain.CategoryAll, "type filter: "+strings.Join(domain.Categories, ", "))
	browseCmd.Flags().StringVarP(&browseSearch, "search", "s", "", "name substring or exact id")
	browseCmd.Flags().IntVar(&browseMore, "more", 0, "extra pages to load")
	browseCmd.Flags().BoolVar(&browseJSON, "json", false, "write NDJSON records to stdout")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if err := checkCategory(browseType); err != nil {
		return err
	}
	p, err := newPipeline()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	b := session.NewBrowser(p.collector, p.fetcher, cfg.InitialVisible, cfg.VisibleStep, logger)
	defer b.Close()

	v := b.SelectCategory(ctx, browseType)
	for i := 0; i < browseMore && v.HasMore && !v.Stale; i++ {
		v = b.LoadMore(ctx)
	}
	if strings.TrimSpace(browseSearch) != "" {
		v = b.Search(ctx, browseSearch)
	}
	if v.Stale {
		return nil
	}

	if browseJSON {
		return writeNDJSON(os.Stdout, v.Records)
	}
	printView(os.Stdout, v)
	return nil
}

func writeNDJSON(out io.Writer, records []domain.Record) error {
	in := make(chan domain.Record)
	var wg sync.WaitGroup
	writer := &storage.WriterService{Out: out}
	wg.Add(1)
	go writer.Start(&wg, in)
	for _, r := range records {
		in <- r
	}
	close(in)
	wg.Wait()
	return writer.Err()
}

func printView(out io.Writer, v session.View) {
	if v.Empty() {
		fmt.Fprintln(out, "Nothing found.")
		return
	}
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-6s %-24s %s", "#", "NAME", "TYPE")))
	for _, r := range v.Records {
		fmt.Fprintf(out, "#%03d   %-24s %s\n", r.ID, r.Name, r.PrimaryType())
	}
	fmt.Fprintf(out, "\n%d shown · %d in %q", len(v.Records), v.Total, v.Category)
	if v.HasMore {
		fmt.Fprint(out, " · use --more to load more")
	}
	fmt.Fprintln(out)
}
