// Package export builds spreadsheet downloads for the admin back office.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/Dosada05/sports-portal/models"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet   = "Players"
	maxSheetName   = 31
	otherSportName = "Other"
)

var rosterHeader = []interface{}{
	"Unique ID", "R-Number", "Name", "Email", "Phone", "Department", "Year",
	"Gender", "Blood Group", "Captain", "Status", "Added At",
}

var sheetNameReplacer = strings.NewReplacer(
	"[", "(", "]", ")", ":", "-", "*", "-", "?", "", "/", "-", `\`, "-",
)

// SheetName converts a sport into a valid, unique-per-sport worksheet name.
func SheetName(sport string) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(sport))
	if name == "" {
		name = otherSportName
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// DepartmentPlayersXLSX writes one worksheet per sport, sorted by sport name,
// each listing that sport's players in the given order.
func DepartmentPlayersXLSX(players []models.DepartmentPlayer) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	bySport := make(map[string][]models.DepartmentPlayer)
	for _, p := range players {
		name := SheetName(p.Sport)
		bySport[name] = append(bySport[name], p)
	}

	sheets := make([]string, 0, len(bySport))
	for name := range bySport {
		sheets = append(sheets, name)
	}
	sort.Strings(sheets)
	if len(sheets) == 0 {
		sheets = []string{defaultSheet}
	}

	// NewFile создаёт "Sheet1", переименовываем его в первый лист
	if err := f.SetSheetName("Sheet1", sheets[0]); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
	}

	for _, name := range sheets {
		if err := writeRoster(f, name, bySport[name]); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return &buf, nil
}

func writeRoster(f *excelize.File, sheet string, players []models.DepartmentPlayer) error {
	if err := f.SetSheetRow(sheet, "A1", &rosterHeader); err != nil {
		return fmt.Errorf("failed to write header on %q: %w", sheet, err)
	}
	for i, p := range players {
		captain := ""
		if p.CaptainName != nil {
			captain = *p.CaptainName
		}
		row := []interface{}{
			p.UniqueID, p.RNumber, p.Name, p.Email, p.Phone, p.Department, p.Year,
			p.Gender, p.BloodGroup, captain, string(p.Status), p.AddedAt.Format("2006-01-02 15:04"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %q: %w", i+2, sheet, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rosterHeader), len(players)+1)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("failed to set filter on %q: %w", sheet, err)
	}
	return nil
}
