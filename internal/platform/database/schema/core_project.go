package schema

// CoreProjectTable represents the 'core.project' table
type CoreProjectTable struct {
	Table               string
	ID                  string
	Title               string
	Slug                string
	Type                string
	Description         string
	CoverImagePublicID  string
	BannerImagePublicID string
	ReleaseDate         string
	IsPublished         string
	Price               string
	Currency            string
	ExternalWatchURL    string
	TrailerURL          string
	CreatedAt           string
	UpdatedAt           string
}

// CoreProject is the schema definition for core.project
var CoreProject = CoreProjectTable{
	Table:               "core.project",
	ID:                  "id",
	Title:               "title",
	Slug:                "slug",
	Type:                "type",
	Description:         "description",
	CoverImagePublicID:  "coverimagepublicid",
	BannerImagePublicID: "bannerimagepublicid",
	ReleaseDate:         "releasedate",
	IsPublished:         "ispublished",
	Price:               "price",
	Currency:            "currency",
	ExternalWatchURL:    "externalwatchurl",
	TrailerURL:          "trailerurl",
	CreatedAt:           "createdat",
	UpdatedAt:           "updatedat",
}

// Columns lists every column in SELECT order.
func (t CoreProjectTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Type, t.Description, t.CoverImagePublicID, t.BannerImagePublicID,
		t.ReleaseDate, t.IsPublished, t.Price, t.Currency, t.ExternalWatchURL, t.TrailerURL,
		t.CreatedAt, t.UpdatedAt,
	}
}
