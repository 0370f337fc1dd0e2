package kitcompanion

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SiteConfig carries the presentational and deployment data the pages are
// rendered from: branding, store link, landing statistics, marketplace
// products, the emergency directory, device resource links and the
// identity provider block. Everything here is operator-supplied, not
// member-supplied.
type SiteConfig struct {
	Site      SiteInfo          `yaml:"site"`
	Store     StoreLink         `yaml:"store"`
	Stats     []Stat            `yaml:"stats"`
	Products  []ProductCategory `yaml:"products"`
	Emergency EmergencyConfig   `yaml:"emergency"`
	Resources []ResourceSection `yaml:"resources"`
	Identity  IdentityProvider  `yaml:"identity"`
}

// SiteInfo is the branding block.
type SiteInfo struct {
	Name      string `yaml:"name"`
	Product   string `yaml:"product"`
	Tagline   string `yaml:"tagline"`
	Copyright string `yaml:"copyright"`
}

// StoreLink points at the external storefront where the kit is sold.
type StoreLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Stat is one landing-page statistic card.
type Stat struct {
	Value  string `yaml:"value"`
	Label  string `yaml:"label"`
	Change string `yaml:"change"`
}

// ProductCategory is one marketplace section of recommended products.
type ProductCategory struct {
	Category    string    `yaml:"category"`
	Tagline     string    `yaml:"tagline"`
	Description string    `yaml:"description"`
	Items       []Product `yaml:"items"`
}

// Product is one recommended product with its affiliate link.
type Product struct {
	Name   string `yaml:"name"`
	Price  string `yaml:"price"`
	Rating string `yaml:"rating"`
	URL    string `yaml:"url"`
}

// EmergencyConfig groups the emergency directory entries.
type EmergencyConfig struct {
	Reporting  []EmergencyContact `yaml:"reporting"`
	Credit     []EmergencyContact `yaml:"credit"`
	Government []EmergencyContact `yaml:"government"`
}

// EmergencyContact is one directory card: an agency or service with a
// phone number and/or website.
type EmergencyContact struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Phone       string `yaml:"phone"`
	URL         string `yaml:"url"`
	Urgent      bool   `yaml:"urgent"`
	Badge       string `yaml:"badge"`
}

// ResourceSection is one device/browser section of privacy-settings links.
type ResourceSection struct {
	Key   string         `yaml:"key"`
	Title string         `yaml:"title"`
	Items []ResourceLink `yaml:"items"`
}

// ResourceLink is one how-to link within a resource section.
type ResourceLink struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// DefaultSiteConfig returns the built-in configuration used when no file
// is supplied.
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		Site: SiteInfo{
			Name:      "Senior Cyber Secure",
			Product:   "Parent Protection Kit",
			Tagline:   "Empowering seniors and their families to stay safe from online scams and fraud.",
			Copyright: "© Senior Cyber Secure. All rights reserved.",
		},
		Store: StoreLink{Name: "Etsy", URL: "https://www.etsy.com"},
		Stats: []Stat{
			{Value: "$16.6B", Label: "Total Cybercrime Losses (2024)", Change: "+33% from 2023"},
			{Value: "$4.9B", Label: "Losses by Seniors (60+)", Change: "+43% from 2023"},
			{Value: "147,127", Label: "Elder Fraud Complaints", Change: "FBI IC3 2024"},
			{Value: "$33,915", Label: "Average loss per elderly victim", Change: ""},
		},
		Emergency: EmergencyConfig{
			Reporting: []EmergencyContact{
				{Name: "FBI IC3", Description: "Internet Crime Complaint Center — report online fraud.", URL: "https://www.ic3.gov", Urgent: true},
				{Name: "FTC Fraud Report", Description: "Federal Trade Commission fraud reporting.", URL: "https://reportfraud.ftc.gov", Urgent: true},
				{Name: "AARP Fraud Helpline", Description: "Free support for fraud victims and families.", Phone: "1-877-908-3360", Badge: "FREE"},
			},
			Credit: []EmergencyContact{
				{Name: "Free Credit Report", Description: "Your annual free reports from all three bureaus.", URL: "https://www.annualcreditreport.com"},
				{Name: "Equifax Fraud Alert", Description: "Place a fraud alert; the bureau notifies the other two.", Phone: "1-800-525-6285", URL: "https://www.equifax.com"},
			},
			Government: []EmergencyContact{
				{Name: "Social Security Administration", Description: "Report Social Security scams.", Phone: "1-800-772-1213", URL: "https://www.ssa.gov"},
				{Name: "IRS", Description: "The IRS initiates contact by mail, never text or email.", Phone: "1-800-829-1040", URL: "https://www.irs.gov"},
			},
		},
		Identity: IdentityProvider{
			Region:         "us-east-1",
			PasswordPolicy: DefaultPasswordPolicy(),
		},
	}
}

// LoadSiteConfig reads a YAML site configuration. A missing path returns
// the defaults; a present but malformed file is an operator error and
// fails startup.
func LoadSiteConfig(path string) (*SiteConfig, error) {
	cfg := DefaultSiteConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			VerboseLog("site config %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading site config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing site config: %w", err)
	}
	if cfg.Identity.PasswordPolicy.MinLength == 0 {
		cfg.Identity.PasswordPolicy = DefaultPasswordPolicy()
	}
	return cfg, nil
}
