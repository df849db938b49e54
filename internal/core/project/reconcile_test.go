// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dublab/studio/internal/core/project"
)

func TestPlanAssignments(t *testing.T) {
	a := project.Assignment{ArtistID: 1, Role: project.RoleVoiceActor}
	b := project.Assignment{ArtistID: 2, Role: project.RoleDirector}
	c := project.Assignment{ArtistID: 3, Role: project.RoleTranslator}

	t.Run("replace A,B with B,C", func(t *testing.T) {
		storedA, storedB := a, b
		storedA.ID, storedB.ID = 10, 11

		plan := project.PlanAssignments([]project.Assignment{storedA, storedB}, []project.Assignment{b, c})

		assert.Equal(t, []int64{10}, plan.Remove)
		if assert.Len(t, plan.Keep, 1) {
			assert.Equal(t, int64(11), plan.Keep[0].ID)
		}
		if assert.Len(t, plan.Insert, 1) {
			assert.Equal(t, int64(3), plan.Insert[0].ArtistID)
			assert.Zero(t, plan.Insert[0].ID)
		}
	})

	t.Run("same artist with a new role is a new assignment", func(t *testing.T) {
		stored := a
		stored.ID = 10
		sameArtistOtherRole := project.Assignment{ArtistID: 1, Role: project.RoleMixMaster}

		plan := project.PlanAssignments([]project.Assignment{stored}, []project.Assignment{sameArtistOtherRole})
		assert.Equal(t, []int64{10}, plan.Remove)
		assert.Len(t, plan.Insert, 1)
		assert.Empty(t, plan.Keep)
	})

	t.Run("resubmission is a no-op", func(t *testing.T) {
		stored := a
		stored.ID = 10
		stored.CharacterIDs = []int64{5}
		incoming := a
		incoming.CharacterIDs = []int64{5, 6}

		plan := project.PlanAssignments([]project.Assignment{stored}, []project.Assignment{incoming})
		assert.Empty(t, plan.Insert)
		assert.Empty(t, plan.Remove)
		if assert.Len(t, plan.Keep, 1) {
			assert.Equal(t, []int64{5, 6}, plan.Keep[0].CharacterIDs, "links come from the submission")
		}
	})

	t.Run("empty submission removes everything", func(t *testing.T) {
		storedA, storedB := a, b
		storedA.ID, storedB.ID = 10, 11

		plan := project.PlanAssignments([]project.Assignment{storedA, storedB}, nil)
		assert.ElementsMatch(t, []int64{10, 11}, plan.Remove)
		assert.Empty(t, plan.Keep)
		assert.Empty(t, plan.Insert)
	})

	t.Run("client supplied ids are ignored", func(t *testing.T) {
		forged := c
		forged.ID = 999

		plan := project.PlanAssignments(nil, []project.Assignment{forged})
		if assert.Len(t, plan.Insert, 1) {
			assert.Zero(t, plan.Insert[0].ID)
		}
	})
}
