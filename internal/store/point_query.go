package store

import (
	"slices"
	"strconv"
	"strings"

	"github.com/vbonduro/ecoleta/internal/domain"
)

const pointColumns = `points.id, points.image, points.name, points.email, points.whatsapp,
	points.latitude, points.longitude, points.city, points.uf`

// predicate is one optional constraint on the point listing. join, when set,
// is added to the FROM clause; where is ANDed with every other predicate.
type predicate struct {
	join  string
	where string
	args  []any
}

// contains matches rows whose column holds text anywhere, case-sensitively.
// instr is used instead of LIKE because SQLite's LIKE ignores ASCII case and
// treats % and _ in user input as wildcards.
func contains(column, text string) predicate {
	return predicate{where: "instr(" + column + ", ?) > 0", args: []any{text}}
}

// acceptsAnyOf restricts points to those associated with at least one of ids.
// An empty set keeps the join and matches nothing. The set is bound as a single
// JSON array so its size never runs into SQLite's host parameter limit.
func acceptsAnyOf(ids []int64) predicate {
	p := predicate{join: "JOIN point_items ON points.id = point_items.point_id"}
	if len(ids) == 0 {
		p.where = "1 = 0"
		return p
	}
	p.where = "point_items.item_id IN (SELECT value FROM json_each(?))"
	p.args = []any{idSet(ids)}
	return p
}

// idSet renders the distinct ids as a sorted JSON array.
func idSet(ids []int64) string {
	set := slices.Compact(slices.Sorted(slices.Values(ids)))

	var b strings.Builder
	b.WriteByte('[')
	for i, id := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	b.WriteByte(']')
	return b.String()
}

func filterPredicates(f domain.PointFilter) []predicate {
	var preds []predicate
	if f.City != nil {
		preds = append(preds, contains("points.city", *f.City))
	}
	if f.Region != nil {
		preds = append(preds, contains("points.uf", *f.Region))
	}
	if f.Items != nil {
		preds = append(preds, acceptsAnyOf(*f.Items))
	}
	return preds
}

// buildPointQuery composes the listing query for f. Predicates are conjunctive;
// DISTINCT collapses the duplicates the item join produces when a point
// accepts several of the requested items.
func buildPointQuery(f domain.PointFilter) (string, []any) {
	preds := filterPredicates(f)

	var b strings.Builder
	b.WriteString("SELECT DISTINCT ")
	b.WriteString(pointColumns)
	b.WriteString(" FROM points")

	var wheres []string
	var args []any
	for _, p := range preds {
		if p.join != "" {
			b.WriteString(" ")
			b.WriteString(p.join)
		}
		wheres = append(wheres, p.where)
		args = append(args, p.args...)
	}

	if len(wheres) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(wheres, " AND "))
	}
	b.WriteString(" ORDER BY points.id ASC")

	return b.String(), args
}
