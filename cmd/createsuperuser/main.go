// Command createsuperuser bootstraps a manager account from the terminal.
//
//	go run ./cmd/createsuperuser -username admin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"hospitality_backend/internal/config"
	"hospitality_backend/internal/database"
	"hospitality_backend/internal/repositories"
	"hospitality_backend/internal/services"
	"hospitality_backend/pkg/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

func main() {
	username := flag.String("username", "", "username of the new manager account")
	flag.Parse()

	cfg := config.Load()
	utils.InitLogger(utils.LoggerOptions{Level: cfg.Logger.Level, Format: "console"})

	if strings.TrimSpace(*username) == "" {
		fmt.Fprintln(os.Stderr, "usage: createsuperuser -username <name>")
		os.Exit(2)
	}

	password, err := promptPassword()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not read password")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	authService := services.NewAuthService(
		repositories.NewAuthRepository(),
		repositories.NewStaffRepository(),
		repositories.NewTransactor(db),
		utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.TTL),
	)

	user, err := authService.CreateSuperuser(log.Logger.WithContext(ctx), *username, password)
	if err != nil {
		var svcErr *services.Error
		if errors.As(err, &svcErr) {
			log.Error().Str("detail", svcErr.Detail()).Msg("Failed to create superuser")
			fmt.Fprintln(os.Stderr, svcErr.Error())
		} else {
			log.Error().Err(err).Msg("Failed to create superuser")
		}
		db.Close()
		os.Exit(1)
	}

	fmt.Printf("superuser %q created (id %d)\n", user.Username, user.ID)
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal")
	}

	fmt.Print("Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Password (again): ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
