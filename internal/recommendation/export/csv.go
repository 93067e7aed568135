// Package export flattens recommendation sets into the CSV layout consumed
// by downstream reporting. The row shape and quoting are a compatibility
// contract with existing exports: every field is double-quote wrapped with
// internal quotes doubled, one row per item, sections in display order.
// encoding/csv is deliberately not used here because it quotes fields only
// when necessary, which would change the bytes existing consumers parse.
package export

import (
	"strings"

	"docready/internal/domain"
)

// csvHeader precedes the item rows.
var csvHeader = []string{"Section", "Item", "Status", "Reason"}

// CSV renders the recommendation set as a CSV document. Sections appear in
// general, income, assets, credit order; item order within a section is
// preserved from the engine.
func CSV(set *domain.RecommendationSet) string {
	var b strings.Builder
	writeRow(&b, csvHeader)
	for _, cat := range domain.Categories() {
		for _, item := range set.Section(cat) {
			writeRow(&b, []string{string(cat), item.Name, string(item.Status), item.Reason})
		}
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
