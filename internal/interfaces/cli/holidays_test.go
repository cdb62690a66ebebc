package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
)

type captureRepo struct {
	saved []calendar.Holiday
	fail  bool
}

func (r *captureRepo) FetchRange(context.Context, time.Time, time.Time) ([]calendar.Holiday, error) {
	return nil, nil
}

func (r *captureRepo) Save(_ context.Context, h *calendar.Holiday) error {
	if r.fail {
		return assert.AnError
	}
	r.saved = append(r.saved, *h)
	return nil
}

func (r *captureRepo) DeleteByID(context.Context, int64) error { return nil }

func TestImportHolidaysCSV(t *testing.T) {
	input := strings.Join([]string{
		"data,escopo,local,descricao,fonte",
		"2026-04-21,NACIONAL,,Tiradentes,planalto",
		"25/01/2026,MUNICIPAL,São Paulo,Aniversário da cidade,prefeitura",
		"2026-04-21,NACIONAL,,Tiradentes duplicado,planalto", // duplicate key
		"2026-12-08,ESTADUAL,Ilhabela,deveria ser fixo,tjsp",  // locality blanked
		"bogus,NACIONAL,,linha quebrada,x",                    // unparseable date
		"2026-06-01,FERIADO_MISTERIOSO,,escopo desconhecido,x", // unknown scope
	}, "\n")

	repo := &captureRepo{}
	stats := importHolidaysCSV(context.Background(), repo, strings.NewReader(input), logging.NewNopLogger())

	assert.Equal(t, 3, stats.Inserted)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 2, stats.Errors)
	require.Len(t, repo.saved, 3)

	assert.Equal(t, string(calendar.ScopeNational), repo.saved[0].Scope)
	assert.Equal(t, time.Date(2026, 4, 21, 0, 0, 0, 0, time.UTC), repo.saved[0].Date)

	assert.Equal(t, string(calendar.ScopeMunicipal), repo.saved[1].Scope)
	assert.Equal(t, "São Paulo", repo.saved[1].Locality)
	assert.Equal(t, time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC), repo.saved[1].Date, "day-first format")

	assert.Equal(t, string(calendar.ScopeState), repo.saved[2].Scope)
	assert.Empty(t, repo.saved[2].Locality, "fixed scope drops the locality")
}

func TestImportHolidaysCSVWithBOMHeader(t *testing.T) {
	input := "\uFEFFdata,escopo,local,descricao,fonte\n2026-04-21,NACIONAL,,Tiradentes,planalto\n"

	repo := &captureRepo{}
	stats := importHolidaysCSV(context.Background(), repo, strings.NewReader(input), logging.NewNopLogger())

	assert.Equal(t, 1, stats.Inserted)
	assert.Zero(t, stats.Errors)
}

func TestImportHolidaysCSVMissingColumn(t *testing.T) {
	input := "data,escopo,descricao,fonte\n2026-04-21,NACIONAL,Tiradentes,planalto\n"

	repo := &captureRepo{}
	stats := importHolidaysCSV(context.Background(), repo, strings.NewReader(input), logging.NewNopLogger())

	assert.Zero(t, stats.Inserted)
	assert.Equal(t, 1, stats.Errors)
}

func TestImportHolidaysCSVSaveFailureCountsAsError(t *testing.T) {
	input := "data,escopo,local,descricao,fonte\n2026-04-21,NACIONAL,,Tiradentes,planalto\n"

	repo := &captureRepo{fail: true}
	stats := importHolidaysCSV(context.Background(), repo, strings.NewReader(input), logging.NewNopLogger())

	assert.Zero(t, stats.Inserted)
	assert.Equal(t, 1, stats.Errors)
}

func TestParseCSVDate(t *testing.T) {
	got, err := parseCSVDate("21/04/2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 21, 0, 0, 0, 0, time.UTC), got)

	got, err = parseCSVDate("2026-04-21")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 21, 0, 0, 0, 0, time.UTC), got)

	_, err = parseCSVDate("21-04-2026")
	assert.Error(t, err, "dashes force ISO ordering")

	_, err = parseCSVDate("")
	assert.Error(t, err)
}
