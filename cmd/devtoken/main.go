// Command devtoken prints a signed access token for local testing.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ivankudzin/tailmates/internal/config"
	"github.com/ivankudzin/tailmates/internal/domain/enums"
	authsvc "github.com/ivankudzin/tailmates/internal/services/auth"
)

func main() {
	accountID := flag.Int64("account", 0, "account id to embed in the token")
	rawRole := flag.String("role", string(enums.RoleCustomer), "customer, merchant, manager or admin")
	flag.Parse()

	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	role, ok := enums.ParseRole(*rawRole)
	if !ok || *accountID <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	token, expiresAt, err := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL).
		GenerateAccessToken(*accountID, role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate token:", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Println(token)
}
