// Package schemaref supplies schema.org type and property reference text for
// direct-mode system prompts. Hosts with their own reference storage can
// implement Catalog; the static default keeps the CLI self-contained.
package schemaref

import (
	"sort"
	"strings"

	"github.com/debumedia/schema-generator/models"
)

// Catalog resolves reference text for a preferred type.
type Catalog interface {
	Reference(hint models.TypeHint) string
}

// Vocabulary is the closed set of root types the generator may emit.
var Vocabulary = []string{
	"Article",
	"BlogPosting",
	"WebPage",
	"AboutPage",
	"ContactPage",
	"WebSite",
	"Service",
	"LocalBusiness",
	"Organization",
	"Person",
	"Product",
	"FAQPage",
	"Event",
	"HowTo",
}

// Static is the embedded catalogue.
type Static struct{}

func NewStatic() *Static { return &Static{} }

// Reference returns the reference text for one type when hinted, or the
// whole catalogue for auto so the model can pick.
func (s *Static) Reference(hint models.TypeHint) string {
	if hint != models.TypeHintAuto {
		if text, ok := typeReference[string(hint)]; ok {
			return text
		}
	}

	names := make([]string, 0, len(typeReference))
	for name := range typeReference {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, typeReference[name])
	}
	return strings.Join(parts, "\n\n")
}

var typeReference = map[string]string{
	"Article": `Article — a news or magazine piece.
Key properties: headline, description, articleBody (summary only), author (Person or Organization), datePublished, dateModified, image, mainEntityOfPage.`,

	"BlogPosting": `BlogPosting — a blog entry; subtype of Article.
Key properties: headline, description, author, datePublished, dateModified, keywords, image.`,

	"WebPage": `WebPage — a generic page when nothing more specific fits.
Key properties: name, description, url, datePublished, dateModified, isPartOf (WebSite), primaryImageOfPage.`,

	"AboutPage": `AboutPage — a page describing the organization itself; subtype of WebPage.
Key properties: name, description, url, mainEntity (Organization).`,

	"ContactPage": `ContactPage — a page with contact details; subtype of WebPage.
Key properties: name, description, url, mainEntity (Organization with contactPoint).`,

	"WebSite": `WebSite — the site as a whole, usually alongside a page entity.
Key properties: name, url, description, publisher (Organization).`,

	"Service": `Service — a service offered by an organization.
Key properties: name, description, serviceType, provider (Organization reference), areaServed, offers.`,

	"LocalBusiness": `LocalBusiness — a physical business with a location.
Key properties: name, description, address (PostalAddress), telephone, email, openingHours, url, geo, priceRange.`,

	"Organization": `Organization — a company, institution or other body.
Key properties: name, legalName, description, url, logo, address (PostalAddress), contactPoint, sameAs.`,

	"Person": `Person — an individual.
Key properties: name, jobTitle, description, worksFor (Organization), url, sameAs.`,

	"Product": `Product — a sellable item.
Key properties: name, description, brand, offers (Offer with price and priceCurrency), sku, image, aggregateRating.`,

	"FAQPage": `FAQPage — a page listing questions and answers.
Key properties: mainEntity (array of Question, each with acceptedAnswer Answer). Question text must come verbatim from the page.`,

	"Event": `Event — something happening at a time and place.
Key properties: name, description, startDate, endDate, location (Place with address), organizer, offers.`,

	"HowTo": `HowTo — step-by-step instructions.
Key properties: name, description, step (array of HowToStep with name and text), totalTime, supply, tool.`,
}
