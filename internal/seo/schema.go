package seo

import "time"

// WebPage is the schema.org block stored with every generated document.
type WebPage struct {
	Context         string        `json:"@context"`
	Type            string        `json:"@type"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	URL             string        `json:"url"`
	DatePublished   string        `json:"datePublished"`
	DateModified    string        `json:"dateModified"`
	Publisher       *Organization `json:"publisher,omitempty"`
	About           *Thing        `json:"about,omitempty"`
	LocationCreated *Place        `json:"locationCreated,omitempty"`
}

type Organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type Thing struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type Place struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// PageInput carries the values a WebPage block is built from.
type PageInput struct {
	Title       string
	Description string
	URL         string
	Published   time.Time
	Modified    time.Time
	SiteName    string
	SiteURL     string
	Keyword     string
	Location    string
}

// NewWebPage builds a schema.org WebPage. Empty keyword, location and site
// name leave the matching entity out.
func NewWebPage(in PageInput) WebPage {
	page := WebPage{
		Context:       "https://schema.org",
		Type:          "WebPage",
		Name:          in.Title,
		Description:   in.Description,
		URL:           in.URL,
		DatePublished: in.Published.UTC().Format(time.RFC3339),
		DateModified:  in.Modified.UTC().Format(time.RFC3339),
	}
	if in.SiteName != "" {
		page.Publisher = &Organization{Type: "Organization", Name: in.SiteName, URL: in.SiteURL}
	}
	if in.Keyword != "" {
		page.About = &Thing{Type: "Thing", Name: in.Keyword}
	}
	if in.Location != "" {
		page.LocationCreated = &Place{Type: "Place", Name: in.Location}
	}
	return page
}
