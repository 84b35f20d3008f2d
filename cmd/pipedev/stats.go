package main

import (
	"fmt"
	"io"
	"sort"
)

// writeStats prints one "key value" line per metric, sorted by key.
func writeStats(w io.Writer, stats map[string]any) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s %+v\n", k, stats[k])
	}
}
