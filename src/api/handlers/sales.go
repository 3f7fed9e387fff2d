package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"server/src/utils"

	"github.com/xuri/excelize/v2"
)

func (h *Handler) GetSales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	sales, err := h.LedgerService.ListSales(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, sales, http.StatusOK)
}

// ExportSales streams the user's realized sales as an xlsx workbook.
func (h *Handler) ExportSales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	sales, err := h.LedgerService.ListSales(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)

	headers := []string{"Asset", "Amount", "Buy Price", "Sell Price", "Sold At", "Purchase Date", "Profit", "Profit %"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			h.HandleErrors(w, err)
			return
		}
	}

	for row, sale := range sales.Sales {
		info := sale.Type.Info()
		values := []interface{}{
			info.Name,
			utils.RoundTo(sale.Amount, info.FractionDigits),
			sale.BuyPrice,
			sale.SellPrice,
			sale.SoldAt.Format(utils.ShortDashDateLayout),
			sale.PurchaseDate.Format(utils.ShortDashDateLayout),
			sale.Profit,
			utils.RoundTo(sale.ProfitPercent, 2),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				h.HandleErrors(w, err)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=sales_%s.xlsx", time.Now().Format(utils.ShortDashDateLayout)))
	if err := file.Write(w); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Error("failed to stream sales export")
	}
}
