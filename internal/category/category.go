package category

// Category is the public DTO returned by the category API.
// JSON tags follow the camelCase convention used elsewhere in the project.
type Category struct {
	CategoryID   int     `json:"categoryID"`
	CollectionID int     `json:"collectionId"`
	Name         string  `json:"categoryName"`
	Description  *string `json:"categoryDesc,omitempty"`
	Ord          int     `json:"ord"`
}
