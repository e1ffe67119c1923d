package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"unispattes/internal/domains/adoption/model"
)

const exportSheet = "Demandes"

var exportHeaders = []string{
	"ID",
	"Date",
	"Animal",
	"Nom complet",
	"Email",
	"Téléphone",
	"Adresse",
	"Type de logement",
	"Statut logement",
	"Superficie (m²)",
	"Jardin",
	"Superficie jardin (m²)",
	"Expérience",
	"Autres animaux",
	"Disponibilité",
	"Motivation",
	"Statut",
	"Traitée",
	"Notes",
}

// Export renders every request matching filter (no pagination) as an XLSX workbook.
func (s *adoptionService) Export(ctx context.Context, filter model.ListFilter) ([]byte, error) {
	filter.Normalize()
	filter.Limit = 0
	filter.Page = 1

	requests, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list adoption requests: %w", err)
	}

	f, err := buildExportFile(requests)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func buildExportFile(requests []*model.AdoptionRequest) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	for i, r := range requests {
		row := []interface{}{
			r.ID,
			r.RequestedAt.Format("2006-01-02 15:04"),
			r.AnimalName,
			r.FullName,
			r.Email,
			r.Phone,
			r.Address,
			r.HousingType.Label(),
			r.HousingStatus.Label(),
			nullDecimalCell(r.Surface),
			yesNo(r.HasGarden),
			nullDecimalCell(r.GardenSurface),
			yesNo(r.HasExperience),
			yesNo(r.HasOtherPets),
			r.Availability.Label(),
			r.Motivation,
			r.Status.Label(),
			yesNo(r.Processed),
			r.AdminNotes,
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func nullDecimalCell(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

func yesNo(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}
