// Command token mints a signed access token for local development and
// operations. Production tokens come from the account service; this tool
// only exists so the API can be exercised without it.
//
// Usage:
//
//	token --user=<uuid> [--role=MEMBER|ADMIN] [--ttl=15m]
//
// Requires AUTH_JWT_SECRET to be set. AUTH_JWT_ISSUER is optional and
// must match the server's issuer when overridden.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/whisperboard/backend/internal/auth"
)

func main() {
	userFlag := flag.String("user", "", "user UUID to embed as the token subject")
	roleFlag := flag.String("role", "MEMBER", "role claim: MEMBER or ADMIN")
	ttlFlag := flag.Duration("ttl", 15*time.Minute, "token lifetime")
	flag.Parse()

	if *userFlag == "" {
		fmt.Fprintln(os.Stderr, "Usage: token --user=<uuid> [--role=MEMBER|ADMIN] [--ttl=15m]")
		os.Exit(1)
	}

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatalf("invalid user UUID: %v", err)
	}

	if *roleFlag != "MEMBER" && *roleFlag != "ADMIN" {
		log.Fatalf("invalid role %q: must be MEMBER or ADMIN", *roleFlag)
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		log.Fatal("AUTH_JWT_SECRET environment variable is required")
	}

	issuer := os.Getenv("AUTH_JWT_ISSUER")
	if issuer == "" {
		issuer = "whisperboard"
	}

	manager := auth.NewJWTManager(secret, issuer, *ttlFlag)
	token, err := manager.GenerateAccessToken(userID, *roleFlag)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
