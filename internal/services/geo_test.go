package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGeoResolveSentinels(t *testing.T) {
	// No server behind it; none of these addresses may trigger a lookup.
	g := NewGeoResolver("http://127.0.0.1:0", time.Second, time.Minute, 8)

	tests := []struct {
		name string
		addr string
		want Geo
	}{
		{"loopback", "127.0.0.1", geoLocal},
		{"ipv6 loopback", "::1", geoLocal},
		{"unspecified", "0.0.0.0", geoLocal},
		{"private", "192.168.1.20", geoUnknown},
		{"link local", "169.254.0.5", geoUnknown},
		{"unparseable", "not-an-ip", geoUnknown},
		{"empty", "", geoUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, g.Resolve(tt.addr))
		})
	}
}

func TestGeoResolveLookupAndCache(t *testing.T) {
	var calls atomic.Int32
	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotPath.Store(r.URL.Path)
		fmt.Fprint(w, `{"status":"success","country":"United States","countryCode":"US"}`)
	}))
	defer srv.Close()

	g := NewGeoResolver(srv.URL, time.Second, time.Minute, 8)

	want := Geo{Country: "US", CountryName: "United States"}
	require.Equal(t, want, g.Resolve("8.8.8.8"))
	require.Equal(t, want, g.Resolve("8.8.8.8"))
	require.Equal(t, int32(1), calls.Load(), "second resolve must come from cache")
	require.Equal(t, "/8.8.8.8", gotPath.Load())
}

func TestGeoResolveFailureNotCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			fmt.Fprint(w, `{"status":"fail"}`)
			return
		}
		fmt.Fprint(w, `{"status":"success","country":"Germany","countryCode":"DE"}`)
	}))
	defer srv.Close()

	g := NewGeoResolver(srv.URL, time.Second, time.Minute, 8)

	require.Equal(t, geoUnknown, g.Resolve("9.9.9.9"))
	require.Equal(t, Geo{Country: "DE", CountryName: "Germany"}, g.Resolve("9.9.9.9"))
	require.Equal(t, int32(2), calls.Load(), "failed lookup must not be cached")
}

func TestGeoResolveServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGeoResolver(srv.URL, time.Second, time.Minute, 8)
	require.Equal(t, geoUnknown, g.Resolve("8.8.4.4"))
}

func TestGeoResolveUnreachable(t *testing.T) {
	g := NewGeoResolver("http://127.0.0.1:1", 100*time.Millisecond, time.Minute, 8)
	require.Equal(t, geoUnknown, g.Resolve("8.8.4.4"))
}
