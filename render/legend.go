package render

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/setanarut/paintbynumbers/utils"
)

const (
	legendMargin  = 48.0
	legendTop     = 100.0
	legendSwatch  = 36.0
	legendRowGap  = 12.0
	legendTitle   = "Paint-By-Number Palette"
	legendBodyPt  = 14.0
	legendTitlePt = 26.0
)

// LegendPDF renders a Letter-size legend with one swatch row per palette entry.
// Rows continue on a new page when they run past the bottom margin.
func LegendPDF(entries []utils.PaletteEntry) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, legendMargin)
	pdf.SetTitle(legendTitle, true)
	_, pageH := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", legendTitlePt)
	pdf.SetXY(legendMargin, legendMargin)
	pdf.CellFormat(0, legendTitlePt, legendTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", legendBodyPt)
	pdf.SetDrawColor(0, 0, 0)
	y := legendTop
	for _, e := range entries {
		if y+legendSwatch > pageH-legendMargin {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", legendBodyPt)
			y = legendMargin
		}
		pdf.SetFillColor(int(e.RGB[0]), int(e.RGB[1]), int(e.RGB[2]))
		pdf.Rect(legendMargin, y, legendSwatch, legendSwatch, "FD")
		text := fmt.Sprintf("#%d  RGB (%d, %d, %d)  HEX %s", e.Number, e.RGB[0], e.RGB[1], e.RGB[2], e.Hex)
		pdf.Text(legendMargin+legendSwatch+16, y+legendSwatch/2+legendBodyPt/3, text)
		y += legendSwatch + legendRowGap
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render legend: %w", err)
	}
	return buf.Bytes(), nil
}
