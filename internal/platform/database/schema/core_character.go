package schema

// CoreCharacterTable represents the 'core.character' table
type CoreCharacterTable struct {
	Table         string
	ID            string
	ProjectID     string
	Name          string
	Description   string
	ImagePublicID string
	CreatedAt     string
}

// CoreCharacter is the schema definition for core.character
var CoreCharacter = CoreCharacterTable{
	Table:         "core.character",
	ID:            "id",
	ProjectID:     "projectid",
	Name:          "name",
	Description:   "description",
	ImagePublicID: "imagepublicid",
	CreatedAt:     "createdat",
}
