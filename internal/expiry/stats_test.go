package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-system/internal/entities"
)

func TestCounts(t *testing.T) {
	roster, _, _ := testRoster()
	ref := date(2026, time.June, 15)

	counts := Counts(roster, ref)
	passport := counts[entities.DocPassport]
	assert.Equal(t, 1, passport.Valid)
	assert.Equal(t, 1, passport.Expiring)
	assert.Equal(t, 1, passport.Expired)
	assert.Equal(t, 1, passport.None)

	// nobody has a card date, everything lands in None
	card := counts[entities.DocCard]
	assert.Equal(t, 4, card.None)
}

func TestTopGroups(t *testing.T) {
	roster, _, _ := testRoster()

	groups := TopGroups(roster, 2, func(e *entities.Employee) string {
		if e.CompanyNameEN == nil {
			return ""
		}
		return *e.CompanyNameEN
	})

	require.Len(t, groups, 2)
	assert.Equal(t, GroupCount{Label: "Alpha Contracting", Count: 2}, groups[0])
	assert.Equal(t, GroupCount{Label: "Delta Trading", Count: 1}, groups[1])
}

func TestTopGroupsDeterministicOnTies(t *testing.T) {
	roster := []entities.Employee{
		{Nationality: strp("Indian")},
		{Nationality: strp("Egyptian")},
		{Nationality: strp("Filipino")},
	}

	for i := 0; i < 10; i++ {
		groups := TopGroups(roster, 0, func(e *entities.Employee) string { return *e.Nationality })
		require.Len(t, groups, 3)
		// equal counts fall back to alphabetical order
		assert.Equal(t, "Egyptian", groups[0].Label)
		assert.Equal(t, "Filipino", groups[1].Label)
		assert.Equal(t, "Indian", groups[2].Label)
	}
}
