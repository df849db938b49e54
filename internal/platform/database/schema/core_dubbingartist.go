package schema

// CoreDubbingArtistTable represents the 'core.dubbingartist' table
type CoreDubbingArtistTable struct {
	Table         string
	ID            string
	FirstName     string
	LastName      string
	Bio           string
	ImagePublicID string
	CreatedAt     string
	UpdatedAt     string
}

// CoreDubbingArtist is the schema definition for core.dubbingartist
var CoreDubbingArtist = CoreDubbingArtistTable{
	Table:         "core.dubbingartist",
	ID:            "id",
	FirstName:     "firstname",
	LastName:      "lastname",
	Bio:           "bio",
	ImagePublicID: "imagepublicid",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CoreDubbingArtistTable) Columns() []string {
	return []string{t.ID, t.FirstName, t.LastName, t.Bio, t.ImagePublicID, t.CreatedAt, t.UpdatedAt}
}
