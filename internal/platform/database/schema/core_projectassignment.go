package schema

// CoreProjectAssignmentTable represents the 'core.projectassignment' table
type CoreProjectAssignmentTable struct {
	Table     string
	ID        string
	ProjectID string
	ArtistID  string
	Role      string
	CreatedAt string
}

// CoreProjectAssignment is the schema definition for core.projectassignment
var CoreProjectAssignment = CoreProjectAssignmentTable{
	Table:     "core.projectassignment",
	ID:        "id",
	ProjectID: "projectid",
	ArtistID:  "artistid",
	Role:      "role",
	CreatedAt: "createdat",
}

// CoreAssignmentCharacterTable represents the 'core.assignmentcharacter' table
type CoreAssignmentCharacterTable struct {
	Table        string
	AssignmentID string
	CharacterID  string
}

// CoreAssignmentCharacter is the schema definition for core.assignmentcharacter
var CoreAssignmentCharacter = CoreAssignmentCharacterTable{
	Table:        "core.assignmentcharacter",
	AssignmentID: "assignmentid",
	CharacterID:  "characterid",
}
