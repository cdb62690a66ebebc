package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/infrastructure/database/postgres/repositories"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
	"github.com/juristech/prazojus/pkg/errors"
)

// ImportStats summarises one CSV import run.
type ImportStats struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

func newImportHolidaysCmd(root *rootOptions) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "import-holidays",
		Short: "Import holiday rows from a CSV file",
		Long: "Imports holidays from a CSV with columns data, escopo, local,\n" +
			"descricao, fonte.  Dates accept YYYY-MM-DD and DD/MM/YYYY; scope\n" +
			"labels are folded through the alias table; fixed-scope rows have\n" +
			"their locality blanked.  Duplicate rows within the file are skipped.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			log, err := root.newLogger()
			if err != nil {
				return err
			}

			conn, err := openDatabase(cfg, log)
			if err != nil {
				return err
			}
			defer conn.Close()

			f, err := os.Open(csvPath)
			if err != nil {
				return errors.Wrapf(err, errors.ErrCodeInvalidArgument, "cannot open %s", csvPath)
			}
			defer f.Close()

			repo := repositories.NewHolidayRepository(conn.DB(), log)
			stats := importHolidaysCSV(cmd.Context(), repo, f, log)

			fmt.Fprintf(cmd.OutOrStdout(), "import finished: inserted=%d skipped=%d errors=%d\n",
				stats.Inserted, stats.Skipped, stats.Errors)
			if stats.Errors > 0 {
				return errors.Newf(errors.ErrCodeHolidayInvalid, "%d row(s) failed to import", stats.Errors)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "path to the holiday CSV file")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

var requiredCSVHeaders = []string{"data", "escopo", "local", "descricao", "fonte"}

// importHolidaysCSV streams rows into the repository.  Malformed rows are
// counted and logged, never fatal, so one bad line cannot abort a yearly
// import.
func importHolidaysCSV(ctx context.Context, repo calendar.HolidayRepository, r io.Reader, log logging.Logger) ImportStats {
	var stats ImportStats

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		log.Error("cannot read CSV header", logging.Err(err))
		stats.Errors++
		return stats
	}
	cols, err := headerIndex(header)
	if err != nil {
		log.Error("invalid CSV header", logging.Err(err))
		stats.Errors++
		return stats
	}

	seen := make(map[string]struct{})
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("unreadable CSV row", logging.Int("line", line), logging.Err(err))
			stats.Errors++
			continue
		}

		h, err := rowToHoliday(row, cols)
		if err != nil {
			log.Warn("invalid holiday row", logging.Int("line", line), logging.Err(err))
			stats.Errors++
			continue
		}

		key := h.Date.Format("2006-01-02") + "|" + h.Scope + "|" + h.Locality
		if _, dup := seen[key]; dup {
			stats.Skipped++
			continue
		}
		seen[key] = struct{}{}

		if err := repo.Save(ctx, h); err != nil {
			log.Warn("failed to save holiday row", logging.Int("line", line), logging.Err(err))
			stats.Errors++
			continue
		}
		stats.Inserted++
	}

	return stats
}

// headerIndex maps the required column names to their positions.  A UTF-8
// BOM on the first header cell is tolerated.
func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		cols[strings.ToLower(name)] = i
	}
	for _, want := range requiredCSVHeaders {
		if _, ok := cols[want]; !ok {
			return nil, errors.Newf(errors.ErrCodeHolidayInvalid, "CSV is missing required column %q", want)
		}
	}
	return cols, nil
}

func rowToHoliday(row []string, cols map[string]int) (*calendar.Holiday, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	day, err := parseCSVDate(field("data"))
	if err != nil {
		return nil, err
	}

	scope := calendar.ResolveScope(field("escopo"))
	locality := field("local")
	if scope.IsFixed() {
		locality = ""
	}

	h := &calendar.Holiday{
		Date:        day,
		Scope:       string(scope),
		Locality:    locality,
		Description: field("descricao"),
		Source:      field("fonte"),
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// parseCSVDate accepts ISO and Brazilian day-first formats.
func parseCSVDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New(errors.ErrCodeHolidayInvalid, "empty date")
	}
	layout := "02/01/2006"
	if strings.Contains(raw, "-") {
		layout = "2006-01-02"
	}
	t, err := time.Parse(layout, raw)
	if err != nil {
		return time.Time{}, errors.Newf(errors.ErrCodeHolidayInvalid, "unparseable date %q", raw)
	}
	return calendar.DateOf(t), nil
}
