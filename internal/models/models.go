// Package models defines the content entities managed by the CMS.
//
// JSON tags are the in-memory (camelCase) representation. The wire
// representation used by the remote data service is snake_case; conversion
// between the two happens at the store boundary via the casing package.
// Identifiers are opaque strings and dates are ISO-8601 strings as stored.
package models

// Project is a completed tiling job shown in the portfolio.
type Project struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	ImageURL       string `json:"imageUrl"`
	BeforeImageURL string `json:"beforeImageUrl,omitempty"`
	AfterImageURL  string `json:"afterImageUrl,omitempty"`
	Date           string `json:"date"`
}

// Service is an offered service. Features keeps display order.
type Service struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription"`
	ImageURL         string   `json:"imageUrl"`
	Features         []string `json:"features"`
}

// Testimonial is a client quote. Rating is conventionally 3–5; the store
// does not enforce the range.
type Testimonial struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName"`
	Role       string `json:"role"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
}

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

// BlogPost is a long-form news/blog article.
type BlogPost struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Excerpt  string     `json:"excerpt"`
	Content  string     `json:"content"`
	ImageURL string     `json:"imageUrl"`
	Date     string     `json:"date"`
	Author   string     `json:"author"`
	Status   PostStatus `json:"status"`
	Category string     `json:"category"`
}

// JournalEntry is a private note owned by an authenticated user. It exists
// only while a session is present; the owner is always derived from the
// session, never from caller input.
type JournalEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SiteConfig is the singleton site-wide configuration record.
type SiteConfig struct {
	CompanyName      string `json:"companyName"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	WhatsappNumber   string `json:"whatsappNumber"`
	InstagramURL     string `json:"instagramUrl"`
	FacebookURL      string `json:"facebookUrl"`
	TiktokURL        string `json:"tiktokUrl"`
	AboutText        string `json:"aboutText"`
	MissionStatement string `json:"missionStatement"`
	PrimaryColor     string `json:"primaryColor"`
	LogoURL          string `json:"logoUrl,omitempty"`
}
