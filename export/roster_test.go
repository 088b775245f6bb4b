package export

import (
	"testing"
	"time"

	"github.com/Dosada05/sports-portal/models"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fakePlayer(sport string) models.DepartmentPlayer {
	captain := gofakeit.Name()
	return models.DepartmentPlayer{
		Name:        gofakeit.Name(),
		Email:       gofakeit.Email(),
		RNumber:     gofakeit.Numerify("R#####"),
		UniqueID:    gofakeit.Numerify("PLY-####"),
		Department:  "CSE",
		Sport:       sport,
		Gender:      "Boys",
		Year:        "2",
		Status:      models.StatusApproved,
		AddedAt:     time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
		CaptainName: &captain,
	}
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Football", SheetName("Football"))
	assert.Equal(t, "Other", SheetName("  "))
	assert.Equal(t, "Table Tennis - Singles", SheetName("Table Tennis / Singles"))
	assert.Len(t, []rune(SheetName("A very long sport name that exceeds the limit")), 31)
}

func TestDepartmentPlayersXLSX(t *testing.T) {
	players := []models.DepartmentPlayer{
		fakePlayer("Football"),
		fakePlayer("Cricket"),
		fakePlayer("Football"),
	}

	buf, err := DepartmentPlayersXLSX(players)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Cricket", "Football"}, f.GetSheetList())

	rows, err := f.GetRows("Football")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Unique ID", rows[0][0])
	assert.Equal(t, players[0].UniqueID, rows[1][0])
	assert.Equal(t, players[2].Name, rows[2][2])
	assert.Equal(t, "2025-01-02 03:04", rows[1][11])
}

func TestDepartmentPlayersXLSXEmpty(t *testing.T) {
	buf, err := DepartmentPlayersXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Players"}, f.GetSheetList())
	rows, err := f.GetRows("Players")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
