package schema

// CoreProjectCategoryTable represents the 'core.projectcategory' table
type CoreProjectCategoryTable struct {
	Table      string
	ProjectID  string
	CategoryID string
}

// CoreProjectCategory is the schema definition for core.projectcategory
var CoreProjectCategory = CoreProjectCategoryTable{
	Table:      "core.projectcategory",
	ProjectID:  "projectid",
	CategoryID: "categoryid",
}
