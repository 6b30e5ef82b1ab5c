package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"

	"meetup-lab/domain"
)

// Read-only dump of the planner's Badger keyspaces. Safe to run while the
// planner holds the lock.
func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	prefix := flag.String("prefix", "topic:", "Prefix to scan (topic: or meeting:)")
	flag.Parse()

	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Detail", "Votes", "Phase/Category"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(*prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				table.Append(describe(key, v))
				return nil
			})
			if err != nil {
				fmt.Printf("Error reading key %s: %v\n", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
	table.Render()
}

func describe(key string, val []byte) []string {
	switch {
	case strings.HasPrefix(key, "topic:"):
		var t domain.Topic
		if err := json.Unmarshal(val, &t); err != nil {
			return []string{key, "unreadable", "-", "-"}
		}
		return []string{shorten(key), t.Title, strconv.Itoa(t.Votes), string(t.Category)}
	case strings.HasPrefix(key, "meeting:"):
		var m domain.Meeting
		if err := json.Unmarshal(val, &m); err != nil {
			return []string{key, "unreadable", "-", "-"}
		}
		detail := fmt.Sprintf("%d slots", len(m.Slots))
		if m.SelectedTopic != nil {
			detail = m.SelectedTopic.Title
		}
		return []string{shorten(key), detail, "-", string(m.Phase)}
	default:
		return []string{key, "Size: " + strconv.Itoa(len(val)) + " bytes", "-", "-"}
	}
}

func shorten(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) == 3 && len(parts[2]) > 8 {
		return parts[0] + ":" + parts[2][:8]
	}
	return key
}
