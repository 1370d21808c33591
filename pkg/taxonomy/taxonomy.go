// Package taxonomy holds the fixed keyword categories and regulation references
// used by the classifiers. Both tables are built once and never mutated.
package taxonomy

// Category is a named group of lowercase trigger phrases
type Category struct {
	Name         string
	Phrases      []string
	HighPriority bool
}

// Categories is the ordered keyword taxonomy
type Categories struct {
	list []Category
}

// Regulation is a regulation code and its human-readable name
type Regulation struct {
	Code string
	Name string
}

// Regulations is the ordered regulation reference list
type Regulations struct {
	list []Regulation
}

const (
	AgeGate           = "age_gate"
	LocationBlocking  = "location_blocking"
	DataLocalization  = "data_localization"
	Privacy           = "privacy"
	ContentModeration = "content_moderation"
	Monetization      = "monetization"
	SocialFeatures    = "social_features"
	Algorithm         = "algorithm"
	LiveStreaming     = "live_streaming"
	Ecommerce         = "ecommerce"
)

var defaultCategories = &Categories{list: []Category{
	{Name: AgeGate, HighPriority: true, Phrases: []string{"age gate", "age verification", "age check", "under 18", "under 13", "minors"}},
	{Name: LocationBlocking, HighPriority: true, Phrases: []string{"location-based blocking", "geo-blocking", "geographic restriction", "country-specific"}},
	{Name: DataLocalization, HighPriority: true, Phrases: []string{"data localization", "data residency", "local data storage", "regional data"}},
	{Name: Privacy, Phrases: []string{"privacy policy", "data protection", "personal information", "user data"}},
	{Name: ContentModeration, HighPriority: true, Phrases: []string{"content moderation", "harmful content", "inappropriate content", "reporting"}},
	{Name: Monetization, Phrases: []string{"advertising", "monetization", "revenue", "sponsored content", "influencer"}},
	{Name: SocialFeatures, Phrases: []string{"social media", "user-generated content", "comments", "sharing", "messaging"}},
	{Name: Algorithm, Phrases: []string{"recommendation algorithm", "content recommendation", "personalized content"}},
	{Name: LiveStreaming, Phrases: []string{"live streaming", "live video", "broadcasting", "real-time content"}},
	{Name: Ecommerce, Phrases: []string{"shopping", "e-commerce", "purchases", "transactions", "payments"}},
}}

var defaultRegulations = &Regulations{list: []Regulation{
	{Code: "DSA", Name: "Digital Services Act (EU)"},
	{Code: "COPPA", Name: "Children's Online Privacy Protection Act (US)"},
	{Code: "GDPR", Name: "General Data Protection Regulation (EU)"},
	{Code: "California_Protecting_Our_Kids", Name: "California Protecting Our Kids Act"},
	{Code: "Florida_Online_Protections", Name: "Florida Online Protections for Minors"},
	{Code: "Utah_Social_Media", Name: "Utah Social Media Regulation Act"},
	{Code: "NCMEC", Name: "NCMEC reporting requirements"},
	{Code: "CCPA", Name: "California Consumer Privacy Act"},
}}

// DefaultCategories returns the built-in keyword taxonomy
func DefaultCategories() *Categories { return defaultCategories }

// DefaultRegulations returns the built-in regulation reference list
func DefaultRegulations() *Regulations { return defaultRegulations }

// NewCategories builds a taxonomy from the given categories. Phrases are copied
// so later changes to the input do not leak in.
func NewCategories(categories []Category) *Categories {
	list := make([]Category, len(categories))
	for i, c := range categories {
		list[i] = Category{
			Name:         c.Name,
			Phrases:      append([]string(nil), c.Phrases...),
			HighPriority: c.HighPriority,
		}
	}
	return &Categories{list: list}
}

// Len returns the number of categories
func (c *Categories) Len() int { return len(c.list) }

// Each calls fn for every category in taxonomy order
func (c *Categories) Each(fn func(Category)) {
	for _, cat := range c.list {
		fn(cat)
	}
}

// HighPriority returns the names of the high-priority categories in order
func (c *Categories) HighPriority() []string {
	var names []string
	for _, cat := range c.list {
		if cat.HighPriority {
			names = append(names, cat.Name)
		}
	}
	return names
}

// Lookup returns the category with the given name
func (c *Categories) Lookup(name string) (Category, bool) {
	for _, cat := range c.list {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Len returns the number of regulations
func (r *Regulations) Len() int { return len(r.list) }

// All returns a copy of the regulation list
func (r *Regulations) All() []Regulation {
	return append([]Regulation(nil), r.list...)
}

// Name returns the human-readable name for code
func (r *Regulations) Name(code string) (string, bool) {
	for _, reg := range r.list {
		if reg.Code == code {
			return reg.Name, true
		}
	}
	return "", false
}
