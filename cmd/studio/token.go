// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dublab/studio/internal/platform/config"
	"github.com/dublab/studio/internal/platform/constants"
	"github.com/dublab/studio/internal/platform/sec"
	"github.com/dublab/studio/pkg/uuidv7"
)

type tokenOptions struct {
	userID   string
	username string
	role     string
	ttl      time.Duration
}

func newTokenCommand() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Access token tooling",
	}

	opts := &tokenOptions{}
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Mint an access token signed with JWT_PRIVATE_KEY_PATH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSigning()
			if err != nil {
				return err
			}
			tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
			if err != nil {
				return err
			}

			token, err := issueToken(tokens, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	issueCmd.Flags().StringVar(&opts.userID, "user", "", "Subject user id (defaults to a new UUIDv7)")
	issueCmd.Flags().StringVar(&opts.username, "username", "", "Username claim")
	issueCmd.Flags().StringVar(&opts.role, "role", string(sec.RoleAdmin), "Role claim: admin, editor or member")
	issueCmd.Flags().DurationVar(&opts.ttl, "ttl", time.Hour, "Token lifetime")

	tokenCmd.AddCommand(issueCmd)
	return tokenCmd
}

func issueToken(tokens *sec.TokenService, opts *tokenOptions) (string, error) {
	role := sec.UserRole(opts.role)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", opts.role)
	}
	if opts.ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive, got %s", opts.ttl)
	}

	userID := opts.userID
	if userID == "" {
		userID = uuidv7.New()
	}
	return tokens.GenerateAccessToken(userID, opts.username, role, opts.ttl)
}
