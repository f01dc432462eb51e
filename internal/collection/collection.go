package collection

// Collection is a merchant-curated set of products with its storefront
// presentation. JSON tags follow the camelCase convention used elsewhere
// in the project.
type Collection struct {
	CollectionID int     `json:"collectionId"`
	Name         string  `json:"collectionName"`
	Slug         string  `json:"slug"`
	Image        *string `json:"collectionImg,omitempty"`
	LaunchDate   *string `json:"launchDate,omitempty"`
	Visible      bool    `json:"visible"`
	Featured     int     `json:"featured"`
	CreatedAt    *string `json:"createdAt,omitempty"`
	UpdatedAt    *string `json:"updatedAt,omitempty"`
}
