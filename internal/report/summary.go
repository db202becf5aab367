package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

const summaryMaxPhotos = 6

// Summary renders a one-page PDF overview of an event: header fields, a
// QR code linking back to the record, the narrative detail and up to
// six evidence photos. Unlike Compile it works on any event, drafted or
// not, so crews can print a sheet before the paperwork is finished.
func (c *Compiler) Summary(eventID uint) ([]byte, error) {
	ev, err := c.store.EventByID(eventID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(150, 8, tr(fmt.Sprintf("Resumen de mantenimiento #%d", ev.ID)), "", 1, "L", false, 0, "")

	// QR code to the event detail, top right
	qrPng, err := qrcode.Encode(fmt.Sprintf("%s/api/maintenances/%d", c.baseURL, ev.ID), qrcode.Low, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	_ = pdf.RegisterImageOptionsReader("event_qr", opts, bytes.NewReader(qrPng))
	pdf.ImageOptions("event_qr", 168, 12, 28, 28, false, opts, 0, "")

	row := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(110, 6, tr(value), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	row("Área", ev.Area)
	row("Locación", ev.Location)
	row("Tipo", ev.MaintenanceType)
	row("Activo", ev.AssetDescription)
	row("Código", ev.MaintenanceCode)
	if ev.Class != nil {
		row("Clase", ev.Class.Name)
	}
	row("Mes programado", fmt.Sprintf("%d", ev.ScheduledMonth))
	row("Estado", ev.Status)
	if ev.Author != "" {
		row("Autor", ev.Author)
	}
	if ev.Supervisor != "" {
		row("Supervisor", ev.Supervisor)
	}
	if ev.ExecutionDate != nil {
		row("Fecha ejecución", ev.ExecutionDate.Format(dateLayout))
	}

	if ev.SystemDetail != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, tr("Detalle de actividades"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 4.5, tr(ev.SystemDetail), "", "L", false)
	}

	// Evidence photos in a two-column grid
	var photos []string
	for _, evd := range ev.Evidences {
		path := filepath.Join(c.uploadDir, evd.Filename)
		if _, err := os.Stat(path); err == nil {
			photos = append(photos, path)
		}
		if len(photos) == summaryMaxPhotos {
			break
		}
	}
	if len(photos) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Evidencias", "", 1, "L", false, 0, "")
		const imgW, imgH, gap = 85.0, 55.0, 5.0
		x0 := pdf.GetX()
		y := pdf.GetY()
		for i, path := range photos {
			col := i % 2
			if col == 0 && i > 0 {
				y += imgH + gap
			}
			if y+imgH > 280 {
				break
			}
			x := x0 + float64(col)*(imgW+gap)
			pdf.ImageOptions(path, x, y, imgW, imgH, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render summary PDF: %w", err)
	}
	return buf.Bytes(), nil
}
