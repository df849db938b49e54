// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

// assignmentKey identifies an assignment independently of its row id.
type assignmentKey struct {
	ArtistID int64
	Role     Role
}

// AssignmentPlan is the set of row operations that turns the stored
// assignments into the submitted ones.
type AssignmentPlan struct {
	// Keep are stored rows that survive; ID is the stored id and
	// CharacterIDs the submitted links.
	Keep []Assignment
	// Insert are new (artist, role) pairs without an id.
	Insert []Assignment
	// Remove are ids of stored rows absent from the submission.
	Remove []int64
}

/*
PlanAssignments reconciles stored assignments against a submission.

Matching is by (artist, role). The submission is authoritative: the result
contains exactly the submitted pairs, in submission order across Keep and
Insert, and applying the same submission twice yields an empty Insert and
Remove on the second run.
*/
func PlanAssignments(existing, incoming []Assignment) AssignmentPlan {
	stored := make(map[assignmentKey]int64, len(existing))
	for _, assignment := range existing {
		stored[assignmentKey{assignment.ArtistID, assignment.Role}] = assignment.ID
	}

	plan := AssignmentPlan{}
	wanted := make(map[assignmentKey]struct{}, len(incoming))

	for _, assignment := range incoming {
		key := assignmentKey{assignment.ArtistID, assignment.Role}
		wanted[key] = struct{}{}

		if id, ok := stored[key]; ok {
			assignment.ID = id
			plan.Keep = append(plan.Keep, assignment)
			continue
		}

		assignment.ID = 0
		plan.Insert = append(plan.Insert, assignment)
	}

	for _, assignment := range existing {
		if _, ok := wanted[assignmentKey{assignment.ArtistID, assignment.Role}]; !ok {
			plan.Remove = append(plan.Remove, assignment.ID)
		}
	}

	return plan
}
