package cmd

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/gradepeek/svue-api/internal/api/middleware"
	"github.com/gradepeek/svue-api/internal/infrastructure/config"
	"github.com/gradepeek/svue-api/internal/infrastructure/tokencrypt"
)

var (
	adminSubject string
	adminTTL     time.Duration
)

func init() {
	adminCmd.Flags().StringVar(&adminSubject, "subject", "operator", "subject claim of the minted token")
	adminCmd.Flags().DurationVar(&adminTTL, "ttl", time.Hour, "lifetime of the minted token")

	tokenCmd.AddCommand(adminCmd, inspectCmd)
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint operator tokens and inspect bearer tokens",
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Mint an admin JWT signed with ADMIN_JWT_SECRET",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context(), envFiles...)
		if err != nil {
			return err
		}
		if cfg.Auth.AdminJWTSecret == "" {
			return errors.New("ADMIN_JWT_SECRET is not set")
		}
		if adminTTL <= 0 {
			return errors.New("--ttl must be positive")
		}

		now := time.Now()
		claims := middleware.AdminClaims{
			Role: middleware.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   adminSubject,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(adminTTL)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Auth.AdminJWTSecret))
		if err != nil {
			return fmt.Errorf("sign admin token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), signed)
		return nil
	},
}

// inspectCmd prints the non-secret parts of a bearer token.
var inspectCmd = &cobra.Command{
	Use:   "inspect [bearer-token]",
	Short: "Decrypt a bearer token with ENKEY and show its metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context(), envFiles...)
		if err != nil {
			return err
		}
		key, err := tokencrypt.ParseKey(cfg.EncryptionKey)
		if err != nil {
			return err
		}
		sealer, err := tokencrypt.NewSealer(key)
		if err != nil {
			return err
		}

		sealed, err := base64.StdEncoding.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("bearer token is not base64: %w", err)
		}
		token, err := sealer.Open(string(sealed))
		if err != nil {
			return err
		}

		expiry := time.UnixMilli(token.Expiry).UTC()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "district: %s\n", token.DistrictURL)
		fmt.Fprintf(out, "username: %s\n", token.Username)
		fmt.Fprintf(out, "session:  %t\n", token.Cookie != "")
		fmt.Fprintf(out, "expires:  %s (expired: %t)\n", expiry.Format(time.RFC3339), token.Expired(time.Now()))
		return nil
	},
}
