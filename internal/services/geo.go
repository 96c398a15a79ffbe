package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Geo is a coarse origin: ISO 3166-1 alpha-2 code plus display name, or the
// "XX" sentinel when the origin is local or the lookup failed.
type Geo struct {
	Country     string
	CountryName string
}

var (
	geoLocal   = Geo{Country: "XX", CountryName: "Localhost"}
	geoUnknown = Geo{Country: "XX", CountryName: "Unknown"}
)

// GeoResolver resolves a client address to a country through ip-api.com,
// behind a TTL cache. Lookup failures degrade to the unknown sentinel and
// are not cached, so a later request retries. Resolve never fails a request.
type GeoResolver struct {
	baseURL string
	client  *http.Client
	cache   *lru.LRU[string, Geo]
}

func NewGeoResolver(baseURL string, timeout, cacheTTL time.Duration, cacheSize int) *GeoResolver {
	if cacheSize <= 0 {
		cacheSize = 16384
	}
	return &GeoResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		cache:   lru.NewLRU[string, Geo](cacheSize, nil, cacheTTL),
	}
}

func (g *GeoResolver) Resolve(rawAddr string) Geo {
	ip := net.ParseIP(rawAddr)
	if ip == nil {
		return geoUnknown
	}
	if ip.IsLoopback() || ip.IsUnspecified() {
		return geoLocal
	}
	if ip.IsPrivate() || ip.IsLinkLocalUnicast() {
		return geoUnknown
	}

	if cached, ok := g.cache.Get(rawAddr); ok {
		return cached
	}

	geo, err := g.lookup(rawAddr)
	if err != nil {
		slog.Debug("geo lookup failed", "error", err)
		return geoUnknown
	}

	g.cache.Add(rawAddr, geo)
	return geo
}

type geoAPIResponse struct {
	Status      string `json:"status"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}

func (g *GeoResolver) lookup(addr string) (Geo, error) {
	url := fmt.Sprintf("%s/%s?fields=status,country,countryCode", g.baseURL, addr)
	resp, err := g.client.Get(url)
	if err != nil {
		return geoUnknown, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geoUnknown, fmt.Errorf("geo api returned %d", resp.StatusCode)
	}

	var body geoAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geoUnknown, err
	}
	if body.Status != "success" {
		return geoUnknown, fmt.Errorf("geo api status %q", body.Status)
	}

	geo := Geo{Country: body.CountryCode, CountryName: body.Country}
	if geo.Country == "" {
		geo.Country = "XX"
	}
	if geo.CountryName == "" {
		geo.CountryName = "Unknown"
	}
	return geo, nil
}
