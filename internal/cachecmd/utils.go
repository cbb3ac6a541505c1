package cachecmd

import (
	"fmt"
	"strconv"
	"strings"

	dbpkg "github.com/debumedia/schema-generator/pkg/db"
)

// ResolveEntityID accepts either a numeric entity id or a page URL.
func ResolveEntityID(arg string, database *dbpkg.DB) (int64, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id, nil
	}

	if !strings.HasPrefix(arg, "http://") && !strings.HasPrefix(arg, "https://") {
		return 0, fmt.Errorf("invalid entity reference: %s (use a numeric id or a full URL)", arg)
	}

	entity, err := database.GetEntityByURL(arg)
	if err != nil {
		return 0, err
	}
	if entity == nil {
		return 0, fmt.Errorf("URL not tracked: %s\nNote: only generated URLs are tracked", arg)
	}
	return entity.EntityID, nil
}
