// internal/domain/models/sitepages.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Singleton site configuration documents. Each type lives in its own
// collection holding at most one document; "save" is find-or-create-then-
// overwrite rather than append.

// Footer holds the site-wide footer configuration.
type Footer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AboutText   string             `bson:"about_text,omitempty" json:"about_text,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Links       []FooterLink       `bson:"links,omitempty" json:"links,omitempty"`
	SocialLinks []SocialLink       `bson:"social_links,omitempty" json:"social_links,omitempty"`
	Copyright   string             `bson:"copyright,omitempty" json:"copyright,omitempty"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (f *Footer) SetID(id primitive.ObjectID) { f.ID = id }
func (f *Footer) GetID() primitive.ObjectID { return f.ID }
func (f *Footer) SetUpdatedAt(t time.Time) { f.UpdatedAt = &t }

// FooterLink is an entry in a footer link column.
type FooterLink struct {
	Label string `bson:"label" json:"label"`
	URL   string `bson:"url" json:"url"`
}

// SocialLink is a social-media profile reference.
type SocialLink struct {
	Platform string `bson:"platform" json:"platform"`
	URL      string `bson:"url" json:"url"`
	IconURL  string `bson:"icon_url,omitempty" json:"icon_url,omitempty"`
}

// Navbar holds the site-wide navigation configuration.
type Navbar struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LogoURL   string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	Items     []NavItem          `bson:"items,omitempty" json:"items,omitempty"`
	CTALabel  string             `bson:"cta_label,omitempty" json:"cta_label,omitempty"`
	CTAURL    string             `bson:"cta_url,omitempty" json:"cta_url,omitempty"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (n *Navbar) SetID(id primitive.ObjectID) { n.ID = id }
func (n *Navbar) GetID() primitive.ObjectID { return n.ID }
func (n *Navbar) SetUpdatedAt(t time.Time) { n.UpdatedAt = &t }

// NavItem is one navigation entry; Children hold dropdown entries.
type NavItem struct {
	Label    string    `bson:"label" json:"label"`
	URL      string    `bson:"url" json:"url"`
	Order    int       `bson:"order" json:"order"`
	Children []NavItem `bson:"children,omitempty" json:"children,omitempty"`
}

// Hero holds the landing hero section.
type Hero struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Heading   string             `bson:"heading,omitempty" json:"heading,omitempty"`
	Subtext   string             `bson:"subtext,omitempty" json:"subtext,omitempty"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	VideoURL  string             `bson:"video_url,omitempty" json:"video_url,omitempty"`
	CTALabel  string             `bson:"cta_label,omitempty" json:"cta_label,omitempty"`
	CTAURL    string             `bson:"cta_url,omitempty" json:"cta_url,omitempty"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (h *Hero) SetID(id primitive.ObjectID) { h.ID = id }
func (h *Hero) GetID() primitive.ObjectID { return h.ID }
func (h *Hero) SetUpdatedAt(t time.Time) { h.UpdatedAt = &t }

// About holds the company about page with embedded sub-documents.
type About struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Body      string             `bson:"body,omitempty" json:"body,omitempty"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Mission   AboutSection       `bson:"mission,omitempty" json:"mission,omitempty"`
	Vision    AboutSection       `bson:"vision,omitempty" json:"vision,omitempty"`
	Stats     []AboutStat        `bson:"stats,omitempty" json:"stats,omitempty"`
	Promoters []Promoter         `bson:"promoters,omitempty" json:"promoters,omitempty"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (a *About) SetID(id primitive.ObjectID) { a.ID = id }
func (a *About) GetID() primitive.ObjectID { return a.ID }
func (a *About) SetUpdatedAt(t time.Time) { a.UpdatedAt = &t }

// AboutSection is a titled rich-text block (mission, vision).
type AboutSection struct {
	Title string `bson:"title,omitempty" json:"title,omitempty"`
	Body  string `bson:"body,omitempty" json:"body,omitempty"`
}

// AboutStat is a headline number ("500+ projects delivered").
type AboutStat struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

// Promoter is a founder/leadership profile embedded on the about page.
type Promoter struct {
	Name        string `bson:"name" json:"name"`
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
	Bio         string `bson:"bio,omitempty" json:"bio,omitempty"`
	PhotoURL    string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
}
