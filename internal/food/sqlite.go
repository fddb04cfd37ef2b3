package food

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	_ "modernc.org/sqlite"
)

// SQLiteSchema is the layout LoadSQLite expects. List columns hold JSON
// arrays of strings; rows are read in rowid order.
const SQLiteSchema = `CREATE TABLE IF NOT EXISTS foods (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	image_url TEXT NOT NULL DEFAULT '',
	weather_conditions TEXT NOT NULL DEFAULT '[]',
	is_healthy INTEGER NOT NULL DEFAULT 0,
	calories INTEGER NOT NULL DEFAULT 0,
	prep_time INTEGER NOT NULL DEFAULT 0,
	difficulty TEXT NOT NULL,
	ingredients TEXT NOT NULL DEFAULT '[]',
	benefits TEXT NOT NULL DEFAULT '[]',
	price_range TEXT NOT NULL DEFAULT ''
);`

// LoadSQLite reads the catalog from the foods table of a SQLite database.
// The database is only read.
func LoadSQLite(path string) (*Catalog, error) {
	// sql.Open would silently create a missing file.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, name, description, category, image_url, weather_conditions,
		is_healthy, calories, prep_time, difficulty, ingredients, benefits, price_range
		FROM foods ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query catalog db: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it                          Item
			tags, ingredients, benefits string
		)
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Category, &it.ImageURL, &tags,
			&it.IsHealthy, &it.Calories, &it.PrepTime, &it.Difficulty, &ingredients, &benefits, &it.PriceRange); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		for _, col := range []struct {
			name string
			raw  string
			dst  *[]string
		}{
			{"weather_conditions", tags, &it.WeatherConditions},
			{"ingredients", ingredients, &it.Ingredients},
			{"benefits", benefits, &it.Benefits},
		} {
			if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
				return nil, fmt.Errorf("%w: item %q column %s: %v", ErrInvalidCatalog, it.ID, col.name, err)
			}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read catalog db: %w", err)
	}

	return NewCatalog(items)
}
