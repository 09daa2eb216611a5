package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/artem13815/cvdesk/pkg/cv"
)

const cvColumns = `c.id, c.owner_id, c.file_name, c.storage_key, c.public_url, c.content_type,
	c.size_bytes, c.status, c.failure_reason, c.uploaded_at, c.processed_at,
	COALESCE((SELECT array_agg(t.tag_name ORDER BY t.relevance DESC, t.tag_name)
		FROM cv_tags t WHERE t.cv_id = c.id), '{}') AS tags`

// args collects positional parameters while a statement is rendered.
type args []any

func (a *args) add(v any) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

// renderWhere turns query predicates into a WHERE clause. The owner condition is always first.
func renderWhere(spec cv.QuerySpec, a *args) string {
	conds := []string{"c.owner_id = " + a.add(spec.Owner)}
	for _, p := range spec.Predicates {
		switch p.Kind {
		case cv.PredicateOwner:
			if p.Owner != spec.Owner {
				conds = append(conds, "c.owner_id = "+a.add(p.Owner))
			}
		case cv.PredicateText:
			ph := a.add(likePattern(p.Text))
			conds = append(conds, fmt.Sprintf("(c.file_name ILIKE %s OR c.raw_text ILIKE %s)", ph, ph))
		case cv.PredicateIDs:
			conds = append(conds, "c.id = ANY("+a.add(p.IDs)+"::uuid[])")
		}
	}
	return "WHERE " + strings.Join(conds, " AND ")
}

func orderClause(k cv.SortKey) string {
	switch k {
	case cv.SortOldest:
		return "ORDER BY c.uploaded_at ASC, c.id ASC"
	case cv.SortNameAZ:
		return "ORDER BY c.file_name ASC, c.id ASC"
	case cv.SortNameZA:
		return "ORDER BY c.file_name DESC, c.id ASC"
	default:
		return "ORDER BY c.uploaded_at DESC, c.id ASC"
	}
}

func renderFind(spec cv.QuerySpec) (string, []any) {
	var a args
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(cvColumns)
	sb.WriteString("\nFROM cvs c\n")
	sb.WriteString(renderWhere(spec, &a))
	sb.WriteString("\n")
	sb.WriteString(orderClause(spec.Sort))
	if spec.Limit > 0 {
		sb.WriteString("\nLIMIT " + a.add(spec.Limit))
	}
	if spec.Offset > 0 {
		sb.WriteString("\nOFFSET " + a.add(spec.Offset))
	}
	return sb.String(), a
}

func renderCount(spec cv.QuerySpec) (string, []any) {
	var a args
	q := "SELECT count(*) FROM cvs c\n" + renderWhere(spec, &a)
	return q, a
}

// likePattern escapes LIKE wildcards so q is matched as a plain substring.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
