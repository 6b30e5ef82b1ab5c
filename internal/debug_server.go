package internal

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

// InspectRow is one Badger entry rendered on the inspect page.
type InspectRow struct {
	Key     string
	Kind    string
	Created string
	ID      string
	Detail  string
	Votes   string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// StartDebugServer exposes the raw planner keyspaces over HTTP for
// debugging. Read-only: it never writes to the database.
func StartDebugServer(db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = DefaultMapper
	}

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "topic:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	go func() {
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}

// DefaultMapper decodes the "{kind}:{timestamp}:{uuid}" key layout without
// touching the value.
func DefaultMapper(key string, val []byte) InspectRow {
	parts := strings.Split(key, ":")
	row := InspectRow{
		Key:     key,
		Kind:    "RAW",
		Created: "--:--:--",
		ID:      "--------",
		Detail:  "Size: " + strconv.Itoa(len(val)) + " bytes",
		Votes:   "-",
	}

	if len(parts) >= 3 {
		row.Kind = strings.ToUpper(parts[0])
		if tsNano, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
			row.Created = time.Unix(0, tsNano).Format("15:04:05")
		}
		row.ID = parts[2]
		if len(row.ID) > 8 {
			row.ID = row.ID[:8]
		}
	}
	return row
}
