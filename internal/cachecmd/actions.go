package cachecmd

import (
	"fmt"
	"strings"

	dbpkg "github.com/debumedia/schema-generator/pkg/db"
	"github.com/urfave/cli/v2"
)

// ListAction prints every cached schema with its entity.
func ListAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	entries, err := database.ListEntries()
	if err != nil {
		return fmt.Errorf("failed to list cache entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No cached schemas found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-12s %-50s\n",
		"ID", "Generated", "Version", "Fingerprint", "URL")
	fmt.Println(strings.Repeat("-", 100))

	for _, e := range entries {
		fingerprint := e.Entry.Fingerprint
		if len(fingerprint) > 12 {
			fingerprint = fingerprint[:12]
		}
		fmt.Printf("%-6d %-20s %-8d %-12s %-50s\n",
			e.Entity.EntityID,
			e.Entry.GeneratedAt.Format("2006-01-02 15:04:05"),
			e.Entry.SettingsVersion,
			fingerprint,
			e.Entity.URL,
		)
	}

	fmt.Printf("\nTotal: %d cached schemas\n", len(entries))
	fmt.Printf("\nTip: Use 'schemagen cache show <id>' to see the JSON-LD\n")

	return nil
}

// ShowAction prints the cached JSON-LD for an entity by id or URL.
func ShowAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("entity ID or URL required\nUsage: schemagen cache show <id_or_url>\nExample: schemagen cache show 3 OR schemagen cache show https://example.com/about")
	}

	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	entityID, err := ResolveEntityID(c.Args().First(), database)
	if err != nil {
		return err
	}

	entry, found, err := database.GetEntry(entityID)
	if err != nil {
		return fmt.Errorf("failed to get cache entry: %w", err)
	}
	if !found {
		return fmt.Errorf("no cached schema for entity %d\n\nGenerate one first:\n  schemagen generate --urls \"...\"", entityID)
	}

	fmt.Println(entry.Schema)
	return nil
}

// InvalidateAction removes cached schemas so the next run regenerates.
func InvalidateAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if c.Bool("all") {
		entries, err := database.ListEntries()
		if err != nil {
			return fmt.Errorf("failed to list cache entries: %w", err)
		}
		for _, e := range entries {
			if err := database.DeleteEntry(e.Entity.EntityID); err != nil {
				return fmt.Errorf("failed to invalidate entity %d: %w", e.Entity.EntityID, err)
			}
		}
		fmt.Printf("Invalidated %d cached schemas\n", len(entries))
		return nil
	}

	if c.NArg() == 0 {
		return fmt.Errorf("entity ID or URL required\nUsage: schemagen cache invalidate <id_or_url> OR schemagen cache invalidate --all")
	}

	entityID, err := ResolveEntityID(c.Args().First(), database)
	if err != nil {
		return err
	}

	if err := database.DeleteEntry(entityID); err != nil {
		return fmt.Errorf("failed to invalidate cache entry: %w", err)
	}

	fmt.Printf("Invalidated cached schema for entity %d\n", entityID)
	return nil
}

// HistoryAction lists provider calls for an entity.
func HistoryAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("entity ID or URL required\nUsage: schemagen cache history <id_or_url>")
	}

	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	entityID, err := ResolveEntityID(c.Args().First(), database)
	if err != nil {
		return err
	}

	generations, err := database.ListGenerations(entityID)
	if err != nil {
		return fmt.Errorf("failed to list generations: %w", err)
	}

	if len(generations) == 0 {
		fmt.Printf("No generation history for entity %d\n", entityID)
		return nil
	}

	fmt.Printf("%-38s %-9s %-6s %-16s %-10s\n", "Run", "Status", "Code", "Error", "Duration")
	fmt.Println(strings.Repeat("-", 84))
	for _, g := range generations {
		errorType := g.ErrorType
		if errorType == "" {
			errorType = "-"
		}
		fmt.Printf("%-38s %-9s %-6d %-16s %dms\n",
			g.GenerationID, g.Status, g.StatusCode, errorType, g.DurationMS)
	}

	fmt.Printf("\nTotal: %d generations\n", len(generations))
	return nil
}
