package config

// ExcludedDomains are social platforms and marketplaces that never host
// the event pages we want, only profiles and noise.
var ExcludedDomains = map[string]struct{}{
	"facebook.com":      {},
	"twitter.com":       {},
	"x.com":             {},
	"linkedin.com":      {},
	"instagram.com":     {},
	"youtube.com":       {},
	"tiktok.com":        {},
	"reddit.com":        {},
	"pinterest.com":     {},
	"snapchat.com":      {},
	"discord.com":       {},
	"telegram.org":      {},
	"whatsapp.com":      {},
	"wikipedia.org":     {},
	"amazon.com":        {},
	"ebay.com":          {},
	"craigslist.org":    {},
	"indeed.com":        {},
	"glassdoor.com":     {},
	"monster.com":       {},
	"careerbuilder.com": {},
}

// QueryTemplates are the search query shapes issued per speaker, with
// %s standing for the speaker name. The search client additionally
// issues an "upcoming events <year>" query for the current year.
var QueryTemplates = []string{
	`"%s" keynote conference`,
	`"%s" webinar workshop`,
	`"%s" speaking events`,
	`site:eventbrite.com "%s"`,
	`site:meetup.com "%s"`,
}
