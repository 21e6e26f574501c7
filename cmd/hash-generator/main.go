// Command hash-generator prints the token a client must send with a method
// request. It reads the same configuration as the server, so the salts come
// from SCORING_AUTH_* variables or the config file.
//
//	hash-generator --account horns&hoofs --login h&f
//	hash-generator --login admin
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/scoring-api/internal/config"
	"github.com/phrazzld/scoring-api/internal/domain"
	"github.com/phrazzld/scoring-api/internal/service/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	flags := config.NewFlagSet("hash-generator")
	account := flags.String("account", "", "account to sign")
	login := flags.String("login", "", "login to sign")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	checker := auth.NewTokenChecker(cfg.Auth)
	req := &domain.MethodRequest{Account: account, Login: login}

	_, err = fmt.Fprintln(out, checker.Digest(req))
	return err
}
