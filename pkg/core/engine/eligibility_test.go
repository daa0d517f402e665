package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
)

func TestIsEligible_IdentityExclusion(t *testing.T) {
	fixtures := []*model.Fixture{
		fixtureAt(t, "1s", "Wildcats", matchDay, 12, 0, 1, "Peffermill"),
	}
	eng := newTestEngine(t, fixtures, []string{"1s", "2s"}, travelTable(30))

	for _, team := range []string{"1s", "Wildcats"} {
		eligible, err := eng.isEligible(context.Background(), team, fixtures[0])
		require.NoError(t, err)
		assert.False(t, eligible, "team %s plays in the fixture", team)
	}
}

func TestIsEligible_OverlapExclusion(t *testing.T) {
	// X plays 10:00-11:30; the target runs 11:00-12:30, overlapping it.
	own := fixtureAt(t, "1s", "Wildcats", matchDay, 10, 0, 1, "Peffermill")
	target := fixtureAt(t, "2s", "Reivers", matchDay, 11, 0, 1, "Goldenacre")
	eng := newTestEngine(t, []*model.Fixture{own, target}, []string{"1s", "2s"}, travelTable(0))

	eligible, err := eng.isEligible(context.Background(), "1s", target)
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestIsEligible_TravelBoundary(t *testing.T) {
	// X's own match ends 11:30 at Peffermill; the target starts 13:00 at
	// Titwood, leaving a 90 minute gap.
	own := fixtureAt(t, "1s", "Wildcats", matchDay, 10, 0, 1, "Peffermill")
	target := fixtureAt(t, "2s", "Reivers", matchDay, 13, 0, 1, "Titwood")
	fixtures := []*model.Fixture{own, target}

	// Travel time exactly 90 minutes: buffer_after is 0, which passes.
	eng := newTestEngine(t, fixtures, []string{"1s", "2s"}, travelTable(90))
	eligible, err := eng.isEligible(context.Background(), "1s", target)
	require.NoError(t, err)
	assert.True(t, eligible)

	// Travel time 91 minutes: buffer_after is -1 and buffer_before is far
	// negative (X's match starts long before the target ends), so the team
	// fails both directions for this pair and is disqualified.
	eng = newTestEngine(t, fixtures, []string{"1s", "2s"}, travelTable(91))
	eligible, err = eng.isEligible(context.Background(), "1s", target)
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestIsEligible_ReverseDirectionFeasible(t *testing.T) {
	// X's own match is after the target: X umpires 10:00-11:30 at Titwood,
	// then travels to its 14:00 match at Peffermill. buffer_after is
	// negative (own match hasn't happened yet) but buffer_before passes.
	target := fixtureAt(t, "2s", "Reivers", matchDay, 10, 0, 1, "Titwood")
	own := fixtureAt(t, "1s", "Wildcats", matchDay, 14, 0, 1, "Peffermill")
	fixtures := []*model.Fixture{target, own}

	eng := newTestEngine(t, fixtures, []string{"1s", "2s"}, travelTable(90))
	eligible, err := eng.isEligible(context.Background(), "1s", target)
	require.NoError(t, err)
	assert.True(t, eligible)

	// 151 minutes of travel no longer fits the 150 minute gap.
	eng = newTestEngine(t, fixtures, []string{"1s", "2s"}, travelTable(151))
	eligible, err = eng.isEligible(context.Background(), "1s", target)
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestIsEligible_NoOtherFixturesTriviallyPasses(t *testing.T) {
	target := fixtureAt(t, "2s", "Reivers", matchDay, 10, 0, 1, "Titwood")
	eng := newTestEngine(t, []*model.Fixture{target}, []string{"1s", "2s"}, &stubOracle{})

	eligible, err := eng.isEligible(context.Background(), "1s", target)
	require.NoError(t, err)
	assert.True(t, eligible)
}

func TestEligibleTeams_UniformRosterOrder(t *testing.T) {
	own := fixtureAt(t, "4s", "Wildcats", matchDay, 10, 0, 1, "Peffermill")
	target := fixtureAt(t, "2s", "Reivers", matchDay, 13, 0, 1, "Peffermill")
	eng := newTestEngine(t, []*model.Fixture{own, target}, []string{"4s", "3s", "1s", "2s"}, travelTable(30))

	eligible, err := eng.eligibleTeams(context.Background(), target)
	require.NoError(t, err)

	// 2s plays in the target; everyone else is feasible, in roster order.
	assert.Equal(t, []string{"4s", "3s", "1s"}, eligible)
}
