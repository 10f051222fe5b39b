package ics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcal/internal/model"
)

func TestExport(t *testing.T) {
	items := []model.Item{
		{
			Type:     model.TypeMarker,
			Date:     "2026-08-03T08:00:00",
			Timezone: "Europe/Paris",
			Title:    "Salida del vuelo",
			Color:    "red",
		},
		{
			Type:     model.TypeEvent,
			Start:    "2026-08-04T09:30:00",
			End:      "2026-08-04T12:00:00",
			Timezone: "Europe/Paris",
			Title:    "Museo del Louvre",
			Location: "Rue de Rivoli, París",
			Notes:    "Entradas compradas",
		},
	}

	out := Export(items, "Trip 2026-08-03")

	require.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "X-WR-CALNAME:Trip 2026-08-03")
	assert.Contains(t, out, "SUMMARY:Salida del vuelo")
	assert.Contains(t, out, "SUMMARY:Museo del Louvre")

	// Paris is CEST (+2) in August, so 08:00 local is 06:00Z.
	assert.Contains(t, out, "DTSTART:20260803T060000Z")
	// Markers export as zero-length events.
	assert.Contains(t, out, "DTEND:20260803T060000Z")
	assert.Contains(t, out, "DTSTART:20260804T073000Z")
	assert.Contains(t, out, "LOCATION:Rue de Rivoli\\, París")
	assert.Contains(t, out, "DESCRIPTION:Entradas compradas")
}

func TestExport_SkipsBadItems(t *testing.T) {
	items := []model.Item{
		{Type: model.TypeMarker, Date: "garbage", Timezone: "Europe/Paris", Title: "Roto"},
		{Type: model.TypeMarker, Date: "2026-08-03T08:00:00", Timezone: "Europe/Paris", Title: "Bien"},
	}

	out := Export(items, "Trip")
	assert.NotContains(t, out, "Roto")
	assert.Contains(t, out, "SUMMARY:Bien")
}

func TestExport_StableUIDs(t *testing.T) {
	items := []model.Item{
		{Type: model.TypeMarker, Date: "2026-08-03T08:00:00", Timezone: "Europe/Paris", Title: "Salida"},
	}

	a := Export(items, "Trip")
	b := Export(items, "Trip")
	uid := func(s string) string {
		for _, line := range strings.Split(s, "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}
	require.NotEmpty(t, uid(a))
	assert.Equal(t, uid(a), uid(b), "UIDs derive from item identity, not randomness")
}
