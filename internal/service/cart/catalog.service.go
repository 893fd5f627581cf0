package cart

// Product is one catalog entry. The catalog is the static slug → product
// table the normalizer resolves purchase requests against.
type Product struct {
	ID                   int64
	Slug                 string
	Aliases              []string
	Amount               int64 // cents
	IsDomainRegistration bool
	IsDomainTransfer     bool
	IsGSuite             bool
	IsPlan               bool
	IsEcommercePlan      bool
	IsJetpackProduct     bool
	IsAkismetProduct     bool
}

var catalog = []Product{
	{ID: 1009, Slug: "personal-bundle", Aliases: []string{"personal"}, Amount: 4800, IsPlan: true},
	{ID: 1003, Slug: "value_bundle", Aliases: []string{"premium"}, Amount: 9600, IsPlan: true},
	{ID: 1008, Slug: "business-bundle", Aliases: []string{"business"}, Amount: 30000, IsPlan: true},
	{ID: 1011, Slug: "ecommerce-bundle", Aliases: []string{"ecommerce"}, Amount: 54000, IsPlan: true, IsEcommercePlan: true},
	{ID: 6, Slug: "domain_reg", Aliases: []string{"domain"}, Amount: 1800, IsDomainRegistration: true},
	{ID: 76, Slug: "domain_transfer", Amount: 1800, IsDomainTransfer: true},
	{ID: 5, Slug: "domain_map", Amount: 0},
	{ID: 69, Slug: "gapps", Aliases: []string{"gsuite", "google-workspace"}, Amount: 7200, IsGSuite: true},
	{ID: 70, Slug: "gapps_unlimited", Amount: 14400, IsGSuite: true},
	{ID: 71, Slug: "gapps_extra_license", Amount: 7200, IsGSuite: true},
	{ID: 2005, Slug: "jetpack_personal", Amount: 3900, IsPlan: true, IsJetpackProduct: true},
	{ID: 2000, Slug: "jetpack_premium", Amount: 9900, IsPlan: true, IsJetpackProduct: true},
	{ID: 2100, Slug: "jetpack_backup_daily", Amount: 4200, IsJetpackProduct: true},
	{ID: 2106, Slug: "jetpack_scan", Amount: 4200, IsJetpackProduct: true},
	{ID: 2110, Slug: "jetpack_anti_spam", Amount: 4200, IsJetpackProduct: true},
	{ID: 2104, Slug: "jetpack_search", Amount: 6000, IsJetpackProduct: true},
	{ID: 2311, Slug: "ak_plus_yearly_1", Aliases: []string{"akismet-plus"}, Amount: 10000, IsAkismetProduct: true},
	{ID: 371, Slug: "concierge-session", Amount: 4900},
}

// jetpackCustomThankYou lists the Jetpack products whose purchase lands on
// the my-plan page instead of the generic receipt page.
var jetpackCustomThankYou = map[string]bool{
	"jetpack_backup_daily": true,
	"jetpack_scan":         true,
	"jetpack_anti_spam":    true,
	"jetpack_search":       true,
}

// IsJetpackCustomThankYou reports whether the slug has a product-specific
// Jetpack thank-you destination.
func IsJetpackCustomThankYou(slug string) bool {
	return jetpackCustomThankYou[slug]
}

// FindProduct resolves a slug or alias against the catalog.
func FindProduct(slugOrAlias string) (*Product, bool) {
	for i := range catalog {
		if catalog[i].Slug == slugOrAlias {
			return &catalog[i], true
		}
		for _, alias := range catalog[i].Aliases {
			if alias == slugOrAlias {
				return &catalog[i], true
			}
		}
	}
	return nil, false
}
