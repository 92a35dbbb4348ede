package loader

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// UploadCSVHandler loads an uploaded CSV export into one mirror table.
// Form fields: file, table, sjis ("true"), header ("true").
func UploadCSVHandler(db *sqlx.DB, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		table := r.FormValue("table")
		if _, ok := tableColumns[table]; !ok {
			http.Error(w, fmt.Sprintf("table must be one of %v", Tables()), http.StatusBadRequest)
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Failed to read uploaded file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		opts := CSVOptions{
			ShiftJIS:   r.FormValue("sjis") == "true",
			SkipHeader: r.FormValue("header") == "true",
		}
		n, err := LoadCSV(db, logger, file, table, opts)
		if err != nil {
			logger.Error("CSV upload failed", zap.String("table", table), zap.Error(err))
			http.Error(w, "Failed to load CSV: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": fmt.Sprintf("loaded %d rows into %s", n, table),
			"rows":    n,
		})
	}
}
