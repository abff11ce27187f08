package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/blogwriter-backend/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := bootApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Run(ctx)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate articles for the writer contexts in --input",
	Long: `Generate one article per writer context in the input file.

The file holds either a single writer context (topic, availableProducts,
existingBlogSlugs) or an "items" list of them. An optional "packs" map keyed by
product id supplies packaging data used to flag bulk products.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		batch, err := loadInputFile(inputPath)
		if err != nil {
			return err
		}
		a, err := bootApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		results := a.Blog.GenerateBatch(ctx, batch)

		out := cmd.OutOrStdout()
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			out = f
		}
		var payload any = results
		if len(results) == 1 {
			payload = results[0]
		}
		if err := writeJSON(out, payload); err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if !r.Success {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d generations failed", failed, len(results))
		}
		return nil
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Render the prompt for --input without calling the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, err := loadInputFile(inputPath)
		if err != nil {
			return err
		}
		a, err := bootApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		for _, wc := range batch {
			pv, err := a.Blog.Prompt(wc)
			if err != nil {
				return fmt.Errorf("topic %q: %w", wc.Topic.ID, err)
			}
			fmt.Fprintf(out, "# %s v%d (%s)\n\n## system\n%s\n\n## user\n%s\n\n", pv.Prompt.Name, pv.Prompt.Version, pv.Prompt.Fingerprint()[:12], pv.Prompt.System, pv.Prompt.User)
		}
		return nil
	},
}

var writersCmd = &cobra.Command{
	Use:   "writers",
	Short: "List the registered writers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()
		for _, w := range a.Blog.Writers() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", w.BlogType, w.Prompt)
		}
		return nil
	},
}

func bootApp(ctx context.Context, withBackend bool) (*app.App, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(ctx, cfg, withBackend)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
