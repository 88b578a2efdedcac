// Comando token: emite un JWT para la API con el secreto de AUTH_JWT_SECRET.
//
//	go run ./cmd/token --subject caisse-1 --role staff
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/caisse-api/pkg/config"
	"github.com/jhoicas/caisse-api/pkg/jwt"
)

func main() {
	subject := pflag.StringP("subject", "s", "", "titular del token (usuario o terminal)")
	role := pflag.StringP("role", "r", jwt.RoleStaff, "rol: manager | staff")
	minutes := pflag.IntP("minutes", "m", 0, "validez en minutos (0 = AUTH_JWT_EXPIRATION_MINUTES)")
	pflag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "--subject es obligatorio")
		pflag.Usage()
		os.Exit(2)
	}
	if *role != jwt.RoleManager && *role != jwt.RoleStaff {
		fmt.Fprintf(os.Stderr, "rol desconocido: %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	exp := cfg.Auth.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	token, err := jwt.Generate(cfg.Auth.Secret, *subject, *role, cfg.Auth.Issuer, exp)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
