package main

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/gorilla/mux"
)

func TestRegisterRoutesTable(t *testing.T) {
    r := mux.NewRouter()
    registerRoutes(r.PathPrefix("/api/v1").Subrouter())

    tests := []struct {
        method string
        path   string
    }{
        {"POST", "/api/v1/get-routes"},
        {"POST", "/api/v1/post-feedback"},
        {"GET", "/api/v1/get-feedback"},
        {"POST", "/api/v1/send-alert"},
        {"GET", "/api/v1/get-all-alerts"},
        {"PUT", "/api/v1/update-alert/665f1f77bcf86cd799439011"},
        {"POST", "/api/v1/clear-all-data"},
        {"GET", "/api/v1/gemini-status"},
        {"GET", "/api/v1/get-maps-config"},
        {"GET", "/api/v1/health"},
    }

    for _, tt := range tests {
        req := httptest.NewRequest(tt.method, tt.path, nil)
        var match mux.RouteMatch
        if !r.Match(req, &match) || match.MatchErr != nil {
            t.Errorf("%s %s is not routed: %v", tt.method, tt.path, match.MatchErr)
        }
    }

    req := httptest.NewRequest(http.MethodGet, "/api/v1/maps-config", nil)
    var match mux.RouteMatch
    if r.Match(req, &match) && match.MatchErr == nil {
        t.Error("unexpected route for /api/v1/maps-config")
    }
}
