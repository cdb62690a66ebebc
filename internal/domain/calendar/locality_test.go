package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocality(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"plain", "Ilhabela", "ilhabela"},
		{"accents", "São Sebastião", "sao sebastiao"},
		{"comarca prefix", "Comarca de Ilhabela", "ilhabela"},
		{"foro prefix", "Foro de Ilhabela", "ilhabela"},
		{"foro da prefix", "Foro da Capital", "capital"},
		{"municipio prefix with accent", "Município de Ilhabela", "ilhabela"},
		{"state slash suffix", "Ilhabela/SP", "ilhabela"},
		{"state dash suffix", "Ilhabela - SP", "ilhabela"},
		{"trailing sp token", "Ilhabela SP", "ilhabela"},
		{"collapsed whitespace", "  Foro   de   Ilhabela  ", "ilhabela"},
		{"prefix then suffix", "Comarca de São Sebastião/SP", "sao sebastiao"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeLocality(tc.in))
		})
	}
}

func TestLocalityMatches(t *testing.T) {
	cases := []struct {
		name   string
		loc    string
		target string
		want   bool
	}{
		{"exact", "ilhabela", "ilhabela", true},
		{"loc prefix of target", "sao", "sao sebastiao", true},
		{"target prefix of loc", "sao sebastiao", "sao", true},
		{"substring", "foro regional de santana", "santana", true},
		{"token overlap", "sebastiao da grama", "sao sebastiao", true},
		{"disjoint", "ilhabela", "caraguatatuba", false},
		{"empty loc", "", "ilhabela", false},
		{"empty target", "ilhabela", "", false},
		{"both empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, localityMatches(tc.loc, tc.target))
		})
	}
}

func TestResolveContext(t *testing.T) {
	t.Run("local scopes disabled", func(t *testing.T) {
		lc := resolveContext("Ilhabela", "Ilhabela", false)
		assert.Empty(t, lc.comarca)
		assert.Empty(t, lc.municipality)
	})

	t.Run("municipality defaults from comarca", func(t *testing.T) {
		lc := resolveContext("Comarca de Ilhabela", "", true)
		assert.Equal(t, "ilhabela", lc.comarca)
		assert.Equal(t, "ilhabela", lc.municipality)
	})

	t.Run("unknown comarca falls back to its own name", func(t *testing.T) {
		lc := resolveContext("Caraguatatuba", "", true)
		assert.Equal(t, "caraguatatuba", lc.comarca)
		assert.Equal(t, "caraguatatuba", lc.municipality)
	})

	t.Run("explicit municipality wins", func(t *testing.T) {
		lc := resolveContext("Ilhabela", "São Sebastião", true)
		assert.Equal(t, "ilhabela", lc.comarca)
		assert.Equal(t, "sao sebastiao", lc.municipality)
	})
}

func TestResolveScope(t *testing.T) {
	cases := []struct {
		in   string
		want Scope
	}{
		{"NATIONAL", ScopeNational},
		{"nacional", ScopeNational},
		{"Estadual", ScopeState},
		{"ESTADUAL_SP", ScopeState},
		{"TJSP", ScopeCourtGeneral},
		{"cpc 220", ScopeCourtGeneral},
		{"ART_220", ScopeCourtGeneral},
		{"TJSP_COMARCA", ScopeCourtLocal},
		{"municipal", ScopeMunicipal},
		{"  MUNICIPAL  ", ScopeMunicipal},
		{"FERIADO_LOCAL", ScopeUnknown},
		{"", ScopeUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveScope(tc.in), "label %q", tc.in)
	}
}

func TestHolidayValidate(t *testing.T) {
	day := date(2026, 3, 10)

	assert.NoError(t, (&Holiday{Date: day, Scope: "NATIONAL"}).Validate())
	assert.NoError(t, (&Holiday{Date: day, Scope: "MUNICIPAL", Locality: "Ilhabela"}).Validate())

	assert.Error(t, (&Holiday{Scope: "NATIONAL"}).Validate(), "zero date")
	assert.Error(t, (&Holiday{Date: day, Scope: "whatever"}).Validate(), "unknown scope")
	assert.Error(t, (&Holiday{Date: day, Scope: "NATIONAL", Locality: "Ilhabela"}).Validate(), "fixed scope with locality")
	assert.Error(t, (&Holiday{Date: day, Scope: "MUNICIPAL"}).Validate(), "local scope without locality")
}
