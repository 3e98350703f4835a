// Package table turns reconciliation reports into table data for CLI output.
package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/factmap/internal/cmd/output"
	"github.com/agentstation/factmap/pkg/fields"
	"github.com/agentstation/factmap/pkg/reconcile"
	"github.com/agentstation/factmap/pkg/types"
)

const (
	none         = "-"
	maxCellWidth = 48
)

// Verification lists one classification row per report.
func Verification(reports []*reconcile.Report) output.Data {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		v := r.Verification
		rows = append(rows, []string{
			r.EntityID,
			v.Status.String(),
			transition(r.Transition),
			strconv.Itoa(v.SourceCount),
			strconv.Itoa(v.VerifiedSourceCount),
			strconv.Itoa(v.Confidence),
			strconv.FormatFloat(v.AgreementScore, 'f', 2, 64),
			strconv.Itoa(v.ConflictCount),
		})
	}
	return output.Data{
		Headers: []string{"Entity", "Status", "Transition", "Sources", "Verified", "Confidence", "Agreement", "Conflicts"},
		Rows:    rows,
		ColumnAlignment: []output.Align{
			output.AlignLeft, output.AlignLeft, output.AlignLeft,
			output.AlignRight, output.AlignRight, output.AlignRight, output.AlignRight, output.AlignRight,
		},
	}
}

// Conflicts lists every value group of every conflicting field.
func Conflicts(r *reconcile.Report) output.Data {
	var rows [][]string
	for _, c := range r.Verification.Conflicts {
		for _, g := range c.Groups {
			rows = append(rows, []string{c.Field, Value(g.Value), sources(g.Sources), strconv.Itoa(g.Weight)})
		}
	}
	return output.Data{
		Title:           fmt.Sprintf("Conflicts: %s", r.EntityID),
		Headers:         []string{"Field", "Value", "Sources", "Weight"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignRight},
	}
}

// Resolutions lists the recommended value of each conflicting field, in
// field order.
func Resolutions(r *reconcile.Report) output.Data {
	paths := make([]string, 0, len(r.Resolutions))
	for p := range r.Resolutions {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	rows := make([][]string, 0, len(paths))
	for _, p := range paths {
		res := r.Resolutions[p]
		alts := make([]string, 0, len(res.Alternatives))
		for _, a := range res.Alternatives {
			alts = append(alts, fmt.Sprintf("%s (%d)", Value(a.Value), a.Weight))
		}
		rows = append(rows, []string{
			p,
			Value(res.Recommended),
			sources(res.Sources),
			fmt.Sprintf("%.0f%%", res.Confidence*100),
			orNone(strings.Join(alts, "; ")),
		})
	}
	return output.Data{
		Title:           fmt.Sprintf("Resolutions: %s", r.EntityID),
		Headers:         []string{"Field", "Recommended", "Sources", "Confidence", "Alternatives"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignRight, output.AlignLeft},
	}
}

// Merged lists the merged value and winning sources of each configured
// field, skipping fields no source reported.
func Merged(r *reconcile.Report, spec *fields.Spec) output.Data {
	var rows [][]string
	if r.Merged != nil {
		for _, d := range spec.All() {
			prov, ok := r.Merged.Fields[d.Path]
			if !ok {
				continue
			}
			v, _ := d.Get(&r.Merged.Record)
			rows = append(rows, []string{
				d.Path,
				Value(v.Raw()),
				sources(prov.Winners),
				fmt.Sprintf("%d/%d", prov.Weight, prov.TotalWeight),
			})
		}
	}
	return output.Data{
		Title:           fmt.Sprintf("Merged: %s", r.EntityID),
		Headers:         []string{"Field", "Value", "Winners", "Weight"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignRight},
	}
}

// Hashes lists the content hash of each report.
func Hashes(reports []*reconcile.Report) output.Data {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{r.EntityID, r.ContentHash, strconv.FormatBool(r.Changed)})
	}
	return output.Data{
		Headers: []string{"Entity", "Content Hash", "Changed"},
		Rows:    rows,
	}
}

// Value renders a reported field value for a table cell.
func Value(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return none
	case string:
		s = t
	case fields.Text:
		langs := make([]string, 0, len(t))
		for lang := range t {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		parts := make([]string, 0, len(langs))
		for _, lang := range langs {
			parts = append(parts, lang+": "+t[lang])
		}
		s = strings.Join(parts, "; ")
	case time.Time:
		s = t.UTC().Format(time.RFC3339)
	case []string:
		s = strings.Join(t, ", ")
	case *fields.Coordinates:
		s = fmt.Sprintf("%g, %g", t.Lat, t.Lng)
	default:
		s = fmt.Sprint(t)
	}
	return truncate(orNone(s))
}

func transition(t reconcile.Transition) string {
	if !t.Changed() {
		return none
	}
	return fmt.Sprintf("%s → %s", t.From, t.To)
}

func sources(ids []types.SourceID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return orNone(strings.Join(parts, ", "))
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return none
	}
	return s
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-1]) + "…"
}
