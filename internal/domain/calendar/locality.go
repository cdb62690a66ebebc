package calendar

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// localityPrefixes are the locality-type markers stripped from the front of
// hand-entered jurisdiction strings ("Foro de Ilhabela" → "ilhabela").
var localityPrefixes = []string{
	"comarca de ",
	"foro de ",
	"foro da ",
	"foro do ",
	"municipio de ",
}

// autoMunicipalityByComarca maps a normalized comarca to its default
// municipality when the caller supplies only the comarca.  Entries are only
// needed where the two differ from the fallback (comarca name itself); the
// table exists so future divergent pairs have an obvious place to go.
var autoMunicipalityByComarca = map[string]string{
	"ilhabela": "ilhabela",
}

// stripAccents removes combining marks after NFD decomposition, so that
// "São Sebastião" and "Sao Sebastiao" normalize identically.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeLocality canonicalizes a free-text jurisdiction name into a
// comparable key: accents stripped, lower-cased, whitespace collapsed,
// locality-type prefixes removed, and state suffixes ("/SP", " - SP",
// trailing " sp") dropped.  Blank input yields the empty string; the
// function never fails.
//
//	"Foro de Ilhabela"        → "ilhabela"
//	"Município de Ilhabela/SP" → "ilhabela"
//	"Comarca de São Sebastião" → "sao sebastiao"
func NormalizeLocality(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}

	v = strings.ToLower(stripAccents(v))
	v = strings.Join(strings.Fields(v), " ")

	for _, prefix := range localityPrefixes {
		if strings.HasPrefix(v, prefix) {
			v = strings.TrimSpace(strings.TrimPrefix(v, prefix))
			break
		}
	}

	if i := strings.Index(v, "/"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	if i := strings.Index(v, " - "); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	v = strings.TrimSpace(strings.TrimSuffix(v, " sp"))

	return v
}

// localityMatches is the tolerant equality between a holiday's normalized
// locality and a normalized target jurisdiction.  Holiday rows are
// hand-entered with wildly inconsistent phrasing, so beyond exact equality
// it accepts prefix containment either direction, substring containment
// either direction, and any overlap of whitespace-split tokens.  A false
// positive costs an extra non-business day; a false negative costs a missed
// legal deadline, so matching errs wide.  Empty on either side never matches.
func localityMatches(locNorm, targetNorm string) bool {
	if locNorm == "" || targetNorm == "" {
		return false
	}
	if locNorm == targetNorm {
		return true
	}
	if strings.HasPrefix(locNorm, targetNorm) || strings.HasPrefix(targetNorm, locNorm) {
		return true
	}
	if strings.Contains(locNorm, targetNorm) || strings.Contains(targetNorm, locNorm) {
		return true
	}
	for _, tok := range strings.Fields(locNorm) {
		for _, other := range strings.Fields(targetNorm) {
			if tok == other {
				return true
			}
		}
	}
	return false
}

// localityContext is the normalized (comarca, municipality) pair resolved
// once per engine call.  The zero value means "no local scopes apply".
type localityContext struct {
	comarca      string
	municipality string
}

// resolveContext normalizes the caller's raw jurisdiction strings.  When
// applyLocal is false the context stays empty so local-scope holidays never
// match.  A comarca without a municipality defaults the municipality via
// the alias table, falling back to the comarca name itself, since most
// comarcas in practice share their seat municipality's name.
func resolveContext(comarca, municipality string, applyLocal bool) localityContext {
	if !applyLocal {
		return localityContext{}
	}

	ctx := localityContext{
		comarca:      NormalizeLocality(comarca),
		municipality: NormalizeLocality(municipality),
	}

	if ctx.comarca != "" && ctx.municipality == "" {
		if m, ok := autoMunicipalityByComarca[ctx.comarca]; ok {
			ctx.municipality = m
		} else {
			ctx.municipality = ctx.comarca
		}
	}

	return ctx
}
