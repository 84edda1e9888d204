package manticore

import "fmt"

// Infix indexing with expand_keywords gives the same partial-word matching as
// the edge n-gram analyzer on the Elasticsearch side.
const (
	minInfixLen     = 2
	maxSubstringLen = 20
)

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	doc_id string attribute indexed,
	name text,
	artist_name text,
	album_name text,
	item_type string attribute indexed,
	duration int,
	date string,
	image string
) min_infix_len='%d' max_substring_len='%d' expand_keywords='1' charset_table='non_cjk'`,
		table, minInfixLen, maxSubstringLen)
}
