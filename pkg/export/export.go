package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gridopt/powersched/core/result"
)

// WriteJSON writes the dispatch table to w in JSON format.
func WriteJSON(w io.Writer, records []result.PowerRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteCSV writes the dispatch table to w in CSV format.
func WriteCSV(w io.Writer, records []result.PowerRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "unit", "power"}); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			strconv.Itoa(r.Period),
			r.Unit,
			strconv.FormatFloat(r.Power, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
