package multievent

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ConnectToDatabase opens the run database. For the sqlite driver dbname is
// the database file path and the other arguments are ignored.
func ConnectToDatabase(driver, user, pass, host, dbname string) (*sqlx.DB, error) {
	switch driver {
	case "mysql":
		port := "3306"
		dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
		return sqlx.Connect("mysql", dbURI)
	case "sqlite":
		return sqlx.Connect("sqlite", dbname)
	default:
		return nil, invalidArgument("unknown database driver %q", driver)
	}
}

// ExtentPreset is a named extent valid for a range of runs.
type ExtentPreset struct {
	Name   string  `db:"Name"`
	Min1   float64 `db:"Min1"`
	Max1   float64 `db:"Max1"`
	Min2   float64 `db:"Min2"`
	Max2   float64 `db:"Max2"`
	MinRun int     `db:"MinRun"`
	MaxRun int     `db:"MaxRun"`
}

// Extent validates the stored bounds.
func (p ExtentPreset) Extent() (*Extent, error) {
	e, err := ExtentFromBounds([][]float64{{p.Min1, p.Max1}, {p.Min2, p.Max2}})
	if err != nil {
		return nil, fmt.Errorf("extent preset %q: %w", p.Name, err)
	}
	return e, nil
}

const extentPresetColumns = "Name, Min1, Max1, Min2, Max2, MinRun, MaxRun"

// ErrPresetNotFound is returned when no preset with the name covers the run.
var ErrPresetNotFound = errors.New("extent preset not found")

// LoadExtentPreset reads the preset called name that is valid for runNumber.
func LoadExtentPreset(db *sqlx.DB, name string, runNumber int) (*Extent, error) {
	query := db.Rebind("SELECT " + extentPresetColumns +
		" FROM ExtentPresets WHERE Name = ? AND MinRun <= ? AND MaxRun >= ? ORDER BY MinRun DESC LIMIT 1")
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading extent preset %q for run %d from database", name, runNumber)
		logger.Info(message, "database")
	}
	if configuration.Verbosity > 2 {
		logger.Info(fmt.Sprintf("Query: %s", query), "database")
	}

	var preset ExtentPreset
	err := db.Get(&preset, query, name, runNumber, runNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q for run %d", ErrPresetNotFound, name, runNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	return preset.Extent()
}

// ListExtentPresets returns every preset valid for runNumber, sorted by name.
func ListExtentPresets(db *sqlx.DB, runNumber int) ([]ExtentPreset, error) {
	query := db.Rebind("SELECT " + extentPresetColumns +
		" FROM ExtentPresets WHERE MinRun <= ? AND MaxRun >= ? ORDER BY Name")
	if configuration.Verbosity > 2 {
		logger.Info(fmt.Sprintf("Query: %s", query), "database")
	}

	rows, err := db.Queryx(query, runNumber, runNumber)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	presets := make([]ExtentPreset, 0)
	for rows.Next() {
		result := ExtentPreset{}
		if err := rows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		presets = append(presets, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}
	return presets, nil
}
