package middleware

import (
    "log"
    "net/http"
    "strings"
)

func CORSDebugMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        // Socket.IO negotiates its own CORS handshake
        if strings.HasPrefix(r.URL.Path, "/socket.io/") {
            next.ServeHTTP(w, r)
            return
        }

        // Log request details
        log.Printf("[CORS Debug] Request from Origin: %s", r.Header.Get("Origin"))
        log.Printf("[CORS Debug] Request Method: %s", r.Method)

        // For preflight requests
        if r.Method == "OPTIONS" {
            log.Printf("[CORS Debug] Handling preflight request")
            w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
            w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
            w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, Origin")
            w.WriteHeader(http.StatusOK)
            return
        }

        // Call the next handler
        next.ServeHTTP(w, r)
    })
}
