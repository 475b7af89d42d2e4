package httpserver

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// handleExportOrders writes every recorded custom order to an xlsx sheet
// for the bakery admin.
func (s *Server) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	if s.orders == nil {
		http.Error(w, "order records unavailable", http.StatusServiceUnavailable)
		return
	}
	orders, err := s.orders.List(r.Context(), 0)
	if err != nil {
		writeError(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"ID", "Status", "Event", "Type", "Shape", "Weight", "Fillings",
		"Tiers", "Decoration", "Coating", "Colors", "Date", "Comment",
		"Total", "Sketch", "Created",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, o := range orders {
		values := []any{
			o.ID.String(), string(o.Status), o.Config.Event, o.Config.Type,
			o.Config.Shape, o.Config.Weight, strings.Join(o.Config.Fillings, ", "),
			o.Config.Tiers, o.Config.Decoration, o.Config.Coating,
			strings.Join(o.Config.Colors, ", "), o.Config.Date, o.Config.Comment,
			o.TotalPrice, o.SketchURL, o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Disposition", "attachment; filename=orders.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("orders export write failed")
	}
}
