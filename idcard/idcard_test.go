package idcard

import (
	"bytes"
	"encoding/json"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload(t *testing.T) {
	card := Card{Type: TypeCaptain, Name: "Asha", RNumber: "R123", UniqueID: "CPT-0001"}
	raw, err := card.Payload()
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "R123", decoded["r_number"])
	assert.Equal(t, "CPT-0001", decoded["unique_id"])
	assert.Equal(t, "captain", decoded["type"])
	assert.NotContains(t, decoded, "sport")
}

func TestPayloadRequiresIdentifiers(t *testing.T) {
	_, err := Card{Type: TypePlayer, RNumber: "R1"}.Payload()
	assert.ErrorIs(t, err, ErrIncompleteCard)
}

func TestPNG(t *testing.T) {
	card := Card{Type: TypePlayer, Name: "Ravi", RNumber: "R77", UniqueID: "PLY-0042"}

	data, err := PNG(card, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
	assert.Equal(t, DefaultSize, img.Bounds().Dy())

	data, err = PNG(card, 5000)
	require.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, maxSize, img.Bounds().Dx())
}
