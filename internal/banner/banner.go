package banner

// Banner is a home-page slide and maps to the `banners` table.
type Banner struct {
	ID        int     `json:"id"`
	ImageURL  string  `json:"imageUrl"`
	Link      *string `json:"link,omitempty"`
	Alt       *string `json:"alt,omitempty"`
	SortOrder int     `json:"sortOrder"`
}
