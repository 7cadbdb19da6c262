package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries fills the four reference tables. Existing codes are left
// untouched, so reruns are safe.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding reference dictionaries...")

	for table, rows := range map[string][]referenceRow{
		"companies":     companiesData,
		"departments":   departmentsData,
		"jobs":          jobsData,
		"nationalities": nationalitiesData,
	} {
		if err := seedReferenceTable(ctx, db, table, rows); err != nil {
			log.Fatalf("failed to seed %s: %v", table, err)
		}
	}
	log.Println("reference dictionaries seeded")
}

func seedReferenceTable(ctx context.Context, db *pgxpool.Pool, table string, rows []referenceRow) error {
	query := fmt.Sprintf(`INSERT INTO %s (code, name_en, name_ar) VALUES ($1, $2, $3)
		ON CONFLICT (code) DO NOTHING`, table)
	for _, row := range rows {
		if _, err := db.Exec(ctx, query, row.Code, row.NameEN, row.NameAR); err != nil {
			return err
		}
	}
	return nil
}
