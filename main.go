package main

import (
	"fmt"
	"log"
	"os"

	"github.com/debumedia/schema-generator/internal/cachecmd"
	"github.com/debumedia/schema-generator/internal/generate"
	"github.com/debumedia/schema-generator/internal/inspect"
	"github.com/debumedia/schema-generator/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "schemagen",
		Usage: "Generate schema.org JSON-LD for web pages via an LLM provider",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "settings",
				Value: "settings.yaml",
				Usage: "Path to the settings file",
			},
			&cli.StringFlag{
				Name:  "db",
				Value: "",
				Usage: "Path to the SQLite database (default: schema-generator.db)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "Fetch pages and generate JSON-LD schemas",
				Action: generate.GenerateAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "urls",
						Usage: "Comma-separated list of page URLs",
					},
					&cli.IntFlag{
						Name:  "workers",
						Value: 4,
						Usage: "Number of concurrent workers",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Value: "schemas",
						Usage: "Directory for generated .jsonld files",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Value: ".schemagen-cache",
						Usage: "Directory for the raw HTML cache",
					},
					&cli.StringFlag{
						Name:  "max-age",
						Value: "24h",
						Usage: "Reuse cached HTML younger than this",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Regenerate even when the cached schema is current",
					},
					&cli.BoolFlag{
						Name:  "force-fetch",
						Usage: "Refetch pages, ignoring the HTML cache",
					},
					&cli.StringFlag{
						Name:  "type-hint",
						Value: "auto",
						Usage: "Preferred root schema.org type (advisory)",
					},
					&cli.StringFlag{
						Name:  "analyzed",
						Usage: "Path to a pre-analyzed content JSON file (switches to analyzed mode)",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "json",
						Usage: "Run summary format: json or yaml",
					},
				},
			},
			{
				Name:   "structure",
				Usage:  "Preview the structured content and token budget for a page, without calling a provider",
				Action: inspect.StructureAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Page URL to structure",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Local HTML file to structure instead of a URL",
					},
					&cli.IntFlag{
						Name:  "max-chars",
						Usage: "Truncation limit (default: active model's limit)",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Value: ".schemagen-cache",
						Usage: "Directory for the raw HTML cache",
					},
					&cli.StringFlag{
						Name:  "max-age",
						Value: "24h",
						Usage: "Reuse cached HTML younger than this",
					},
					&cli.StringFlag{
						Name:  "type-hint",
						Value: "auto",
						Usage: "Preferred root schema.org type (advisory)",
					},
					&cli.BoolFlag{
						Name:  "text",
						Usage: "Print only the marker text",
					},
				},
			},
			{
				Name:   "test-connection",
				Usage:  "Validate the configured provider API key with a minimal round trip",
				Action: generate.TestConnectionAction,
			},
			{
				Name:  "cache",
				Usage: "Inspect and manage cached schemas",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all cached schemas",
						Action: cachecmd.ListAction,
					},
					{
						Name:      "show",
						Usage:     "Print the cached JSON-LD for an entity",
						ArgsUsage: "<entity_id_or_url>",
						Action:    cachecmd.ShowAction,
					},
					{
						Name:      "invalidate",
						Usage:     "Drop cached schemas so the next run regenerates",
						ArgsUsage: "<entity_id_or_url>",
						Action:    cachecmd.InvalidateAction,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "all",
								Usage: "Invalidate every cached schema",
							},
						},
					},
					{
						Name:      "history",
						Usage:     "Show past provider calls for an entity",
						ArgsUsage: "<entity_id_or_url>",
						Action:    cachecmd.HistoryAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick-start reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
