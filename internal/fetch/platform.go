// Package fetch - platform.go provides site-builder detection and
// builder-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known website builder small businesses host on.
type Platform string

const (
	// PlatformWix is the Wix site builder
	PlatformWix Platform = "wix"
	// PlatformSquarespace is the Squarespace site builder
	PlatformSquarespace Platform = "squarespace"
	// PlatformShopify is the Shopify storefront platform
	PlatformShopify Platform = "shopify"
	// PlatformWordPress is WordPress.com hosting
	PlatformWordPress Platform = "wordpress"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the site builder from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "wixsite.com") ||
		strings.Contains(host, "wix.com") {
		return PlatformWix
	}

	if strings.Contains(host, "squarespace.com") {
		return PlatformSquarespace
	}

	if strings.Contains(host, "myshopify.com") ||
		strings.Contains(host, "shopify.com") {
		return PlatformShopify
	}

	if strings.Contains(host, "wordpress.com") {
		return PlatformWordPress
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors optimized for a specific builder.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformWix:
		return []string{
			"#PAGES_CONTAINER",
			"#SITE_PAGES",
			"[data-testid='richTextElement']",
			"main",
			".content",
		}
	case PlatformSquarespace:
		return []string{
			".sqs-block-content",
			"#page",
			".page-section",
			"main",
			".content",
		}
	case PlatformShopify:
		return []string{
			".shopify-section",
			"#MainContent",
			"main",
			".content",
		}
	case PlatformWordPress:
		return []string{
			".entry-content",
			".site-content",
			"#content",
			"main",
			"article",
		}
	default:
		return BusinessPageSelectors()
	}
}

// PlatformNoiseSelectors returns noise selectors to strip for a specific builder.
func PlatformNoiseSelectors(platform Platform) []string {
	switch platform {
	case PlatformWix:
		return []string{"#WIX_ADS", "#SITE_HEADER", "#SITE_FOOTER"}
	case PlatformSquarespace:
		return []string{".sqs-announcement-bar", ".header-announcement-bar-wrapper"}
	case PlatformShopify:
		return []string{".announcement-bar", ".cart-drawer", ".shopify-section-header"}
	case PlatformWordPress:
		return []string{".widget-area", ".comments-area", "#secondary"}
	default:
		return nil
	}
}
